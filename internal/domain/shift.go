package domain

import "time"

// Shift is a named duty window ("turno") assignments can reference.
type Shift struct {
	ID          string
	NombreTurno string
	HoraInicio  string
	HoraFin     string
	CreatedAt   time.Time
}
