package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Business é o tenant do sistema: toda consulta e escrita é limitada a
// exatamente um business_id.
type Business struct {
	BusinessID   string    `json:"business_id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Claims transportadas no token JWT de um tenant autenticado
type Claims struct {
	BusinessID   string `json:"business_id"`
	BusinessName string `json:"business_name"`
	jwt.RegisteredClaims
}
