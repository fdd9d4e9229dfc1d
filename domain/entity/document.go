package entity

import "time"

type DocumentType string

const (
	DocumentInsurance    DocumentType = "INSURANCE"
	DocumentInspection   DocumentType = "INSPECTION"
	DocumentRegistration DocumentType = "REGISTRATION"
	DocumentPermit       DocumentType = "PERMIT"
)

func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentInsurance, DocumentInspection, DocumentRegistration, DocumentPermit:
		return true
	}
	return false
}

type DocumentStatus string

const (
	DocumentValid    DocumentStatus = "VALID"
	DocumentExpiring DocumentStatus = "EXPIRING"
	DocumentExpired  DocumentStatus = "EXPIRED"
)

func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentValid, DocumentExpiring, DocumentExpired:
		return true
	}
	return false
}

// Document is a vehicle paper (insurance, inspection...) tracked for expiry.
// It keeps referencing its vehicle even if the vehicle is soft-deleted;
// there is no cascade.
type Document struct {
	ID           string         `json:"id"`
	VehicleID    string         `json:"vehicleId"`
	DocumentType DocumentType   `json:"documentType"`
	ExpiryDate   time.Time      `json:"expiryDate"`
	Status       DocumentStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    *time.Time     `json:"deletedAt,omitempty"`
}
