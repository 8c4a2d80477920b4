package domain

import "time"

// FlightStatus is the counter state of a flight.
type FlightStatus string

const (
	FlightOpen   FlightStatus = "Abierto"
	FlightClosed FlightStatus = "Cerrado"
)

// Flight is a departure handled by the station, shown on the dashboard.
type Flight struct {
	ID          string
	NumeroVuelo string
	TipoVuelo   string
	Terminal    string
	Puente      *string
	Estado      FlightStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
