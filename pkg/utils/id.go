package utils

import "github.com/google/uuid"

// NewSortableID gera um identificador único global ordenável
// lexicograficamente (UUIDv7, prefixado por timestamp).
func NewSortableID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 só falha se a fonte de aleatoriedade do sistema falhar
		return uuid.New().String()
	}
	return id.String()
}
