package entity

import "time"

// Client representa un cliente al que se le facturan servicios.
type Client struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Address   string
	Phone     string
	TaxID     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
