package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Data válida no formato YYYY-MM-DD", func(t *testing.T) {
		date, err := ParseDate("2026-08-31")

		assert.NoError(t, err)
		if assert.NotNil(t, date) {
			assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), *date)
		}
	})

	t.Run("String vazia significa filtro ausente", func(t *testing.T) {
		date, err := ParseDate("")

		assert.NoError(t, err)
		assert.Nil(t, date)
	})

	t.Run("Formato fora do padrão é rejeitado", func(t *testing.T) {
		_, err := ParseDate("31/08/2026")

		assert.Error(t, err)
	})
}

func TestEndOfDay(t *testing.T) {
	result := EndOfDay(time.Date(2026, 8, 15, 10, 30, 45, 0, time.UTC))

	assert.Equal(t, time.Date(2026, 8, 15, 23, 59, 59, 0, time.UTC), result)
}

func TestStartOfDay(t *testing.T) {
	result := StartOfDay(time.Date(2026, 8, 15, 22, 45, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), result)
}

func TestNewSortableID(t *testing.T) {
	a := NewSortableID()
	b := NewSortableID()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	// UUIDv7 carrega o timestamp no prefixo, então IDs gerados em sequência
	// ordenam na ordem de criação
	assert.LessOrEqual(t, a, b)
}
