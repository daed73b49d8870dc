package domain

import "time"

type Contact struct {
	ID        string
	OwnerID   string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
