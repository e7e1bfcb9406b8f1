package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}

// scoreToNumeric convierte ai_score al tipo NUMERIC(3,2); nil -> NULL.
func scoreToNumeric(score *float64) decimal.NullDecimal {
	if score == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(*score).Round(2), Valid: true}
}

// numericToScore convierte NUMERIC(3,2) leído de la BD a *float64.
func numericToScore(n decimal.NullDecimal) *float64 {
	if !n.Valid {
		return nil
	}
	f := n.Decimal.InexactFloat64()
	return &f
}
