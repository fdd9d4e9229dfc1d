package entity

import "time"

type Client struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Contact   *string    `json:"contact,omitempty"`
	Address   *string    `json:"address,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
