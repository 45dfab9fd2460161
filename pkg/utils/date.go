package utils

import "time"

// ParseDate interpreta uma data no formato YYYY-MM-DD.
// Retorna nil quando a string é vazia (filtro ausente).
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// EndOfDay amplia uma data para o fim do dia (23:59:59 UTC),
// mantendo o limite superior dos filtros inclusivo.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}

// StartOfDay trunca um instante para o início do dia em UTC
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
