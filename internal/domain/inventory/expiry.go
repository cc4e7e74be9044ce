package inventory

import (
	"math"
	"time"
)

// ExpiryStatus clasificación de un artículo respecto a su fecha de caducidad.
type ExpiryStatus int

const (
	ExpiryNone     ExpiryStatus = iota // sin fecha o fuera del horizonte
	ExpiryUpcoming                     // now <= fecha <= now+horizonte
	ExpiryExpired                      // fecha < now
)

// ClassifyExpiry ubica expiresAt respecto a now. Ambos extremos del horizonte son inclusivos.
func ClassifyExpiry(now time.Time, expiresAt *time.Time, horizon time.Duration) ExpiryStatus {
	if expiresAt == nil {
		return ExpiryNone
	}
	exp := *expiresAt
	switch {
	case exp.Before(now):
		return ExpiryExpired
	case !exp.After(now.Add(horizon)):
		return ExpiryUpcoming
	default:
		return ExpiryNone
	}
}

// DaysUntil días con signo entre now y t: positivo = días restantes, negativo = días de retraso.
// Se redondea hacia abajo, así un artículo caducado hace unas horas cuenta -1.
func DaysUntil(now, t time.Time) int {
	return int(math.Floor(t.Sub(now).Hours() / 24))
}

// HorizonDays convierte un número de días en duración.
func HorizonDays(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}
