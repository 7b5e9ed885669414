// internal/domain/entity/flight_record.go
package entity

import (
	"time"
)

// NormalizationStatus records how a UTC instant was derived from a local timestamp
type NormalizationStatus string

const (
	NormalizationConverted  NormalizationStatus = "converted"
	NormalizationGapAdjust  NormalizationStatus = "gap_adjusted"
	NormalizationUnresolved NormalizationStatus = "unresolved_location"
	NormalizationEmpty      NormalizationStatus = "empty_timestamp"
	NormalizationDegraded   NormalizationStatus = "degraded"
	NormalizationMalformed  NormalizationStatus = "malformed"
)

// FlightRecord is one scheduled movement of an aircraft.
// DepartureUTC and ArrivalUTC are set once during enrichment and never changed afterwards.
type FlightRecord struct {
	ID                 int    `json:"id"`
	RegistrationNumber string `json:"aircraft_registration_number"`
	AircraftType       string `json:"aircraft_type"`
	FlightNumber       string `json:"flight_number"`
	DepartureAirport   string `json:"departure_airport"`
	DepartureLocal     string `json:"departure_datetime"`
	ArrivalAirport     string `json:"arrival_airport"`
	ArrivalLocal       string `json:"arrival_datetime"`

	DepartureUTC           time.Time           `json:"departure_utc"`
	ArrivalUTC             time.Time           `json:"arrival_utc"`
	DepartureNormalization NormalizationStatus `json:"departure_normalization,omitempty"`
	ArrivalNormalization   NormalizationStatus `json:"arrival_normalization,omitempty"`
}
