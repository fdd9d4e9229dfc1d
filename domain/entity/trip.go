package entity

import "time"

type TripType string

const (
	TripDelivery TripType = "DELIVERY"
	TripReturn   TripType = "RETURN"
	TripTransfer TripType = "TRANSFER"
)

func (t TripType) IsValid() bool {
	switch t {
	case TripDelivery, TripReturn, TripTransfer:
		return true
	}
	return false
}

type Trip struct {
	ID        string     `json:"id"`
	VehicleID string     `json:"vehicleId"`
	DriverID  string     `json:"driverId"`
	ClientID  *string    `json:"clientId,omitempty"`
	Departure string     `json:"departure"`
	Arrival   string     `json:"arrival"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	TripType  TripType   `json:"tripType"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Ongoing reports whether the trip has started but not finished.
func (t *Trip) Ongoing() bool {
	return t.EndTime == nil
}
