package store

import (
	"context"
	"time"
)

// Donation is a row in the donations table.
type Donation struct {
	Type      string    `json:"type"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"date"`
}

// Registration is a row in the it_registrations table.
type Registration struct {
	Name      string    `json:"name"`
	Course    string    `json:"course"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// Appointment is a row in the appointments table.
type Appointment struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Purpose   string    `json:"purpose"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordStore accepts write-only records. The webhook never reads them back.
type RecordStore interface {
	InsertDonation(ctx context.Context, d Donation) error
	InsertRegistration(ctx context.Context, r Registration) error
	InsertAppointment(ctx context.Context, a Appointment) error
}
