package entity

import "time"

type Invoice struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"clientId"`
	TripID      string     `json:"tripId"`
	TotalAmount float64    `json:"totalAmount"`
	InvoiceDate time.Time  `json:"invoiceDate"`
	VolumeM3    float64    `json:"volumeM3"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}
