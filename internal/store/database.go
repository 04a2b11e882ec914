package store

import (
	"context"
	"fmt"

	"saylani-fulfillment/internal/db"
)

// DatabaseStore writes records to the hosted Postgres database.
type DatabaseStore struct {
	db *db.DB
}

func NewDatabaseStore(database *db.DB) *DatabaseStore {
	return &DatabaseStore{db: database}
}

func (ds *DatabaseStore) InsertDonation(ctx context.Context, d Donation) error {
	query := `INSERT INTO donations (type, query, date) VALUES ($1, $2, $3)`
	if _, err := ds.db.ExecContext(ctx, query, d.Type, d.Query, d.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert donation: %w", err)
	}
	return nil
}

func (ds *DatabaseStore) InsertRegistration(ctx context.Context, r Registration) error {
	query := `
		INSERT INTO it_registrations (name, course, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := ds.db.ExecContext(ctx, query, r.Name, r.Course, r.Email, r.Phone, r.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert IT registration: %w", err)
	}
	return nil
}

func (ds *DatabaseStore) InsertAppointment(ctx context.Context, a Appointment) error {
	query := `
		INSERT INTO appointments (name, email, phone, date, time, purpose, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := ds.db.ExecContext(ctx, query, a.Name, a.Email, a.Phone, a.Date, a.Time, a.Purpose, a.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}
