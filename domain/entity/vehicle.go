package entity

import "time"

type VehicleType string

const (
	VehicleTruck         VehicleType = "TRUCK"
	VehicleTractorTrailer VehicleType = "TRACTOR_TRAILER"
	VehicleVan           VehicleType = "VAN"
)

func (t VehicleType) IsValid() bool {
	switch t {
	case VehicleTruck, VehicleTractorTrailer, VehicleVan:
		return true
	}
	return false
}

type VehicleStatus string

const (
	VehicleAvailable     VehicleStatus = "AVAILABLE"
	VehicleOnTrip        VehicleStatus = "ON_TRIP"
	VehicleInMaintenance VehicleStatus = "IN_MAINTENANCE"
)

func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleAvailable, VehicleOnTrip, VehicleInMaintenance:
		return true
	}
	return false
}

type Vehicle struct {
	ID                 string        `json:"id"`
	Brand              string        `json:"brand"`
	Model              string        `json:"model"`
	Type               VehicleType   `json:"type"`
	Status             VehicleStatus `json:"status"`
	TractorPlateNumber string        `json:"tractorPlateNumber"`
	TrailerPlateNumber *string       `json:"trailerPlateNumber,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
	DeletedAt          *time.Time    `json:"deletedAt,omitempty"`
}
