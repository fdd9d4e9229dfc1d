package entity

import (
	"time"
)

type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleDriver UserRole = "DRIVER"
)

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleDriver
}

type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Role      UserRole   `json:"role"`
	Matricule string     `json:"matricule"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

func NewUser(id, name, email, hashedPassword, matricule string, role UserRole) *User {
	return &User{
		ID:        id,
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		Matricule: matricule,
	}
}

// DriverTrips is the drivers-trips report row: a driver plus the trips they
// ran inside the requested window.
type DriverTrips struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Matricule string  `json:"matricule"`
	Trips     []*Trip `json:"trips"`
}
