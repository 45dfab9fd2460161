package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrDuplicateID indica violação de unicidade de identificador no insert
	ErrDuplicateID = errors.New("identificador duplicado")
)

// isUniqueViolation verifica se o erro do banco é de chave única (23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
