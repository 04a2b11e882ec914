package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the most recent records in process. It backs the
// webhook when no DB_URL is configured, and tests.
type MemoryStore struct {
	mu            sync.RWMutex
	maxRecords    int
	donations     []Donation
	registrations []Registration
	appointments  []Appointment
}

func NewMemoryStore(maxRecords int) *MemoryStore {
	return &MemoryStore{maxRecords: maxRecords}
}

func (m *MemoryStore) InsertDonation(_ context.Context, d Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.donations = trim(append(m.donations, d), m.maxRecords)
	return nil
}

func (m *MemoryStore) InsertRegistration(_ context.Context, r Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations = trim(append(m.registrations, r), m.maxRecords)
	return nil
}

func (m *MemoryStore) InsertAppointment(_ context.Context, a Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments = trim(append(m.appointments, a), m.maxRecords)
	return nil
}

func (m *MemoryStore) Donations() []Donation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Donation(nil), m.donations...)
}

func (m *MemoryStore) Registrations() []Registration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Registration(nil), m.registrations...)
}

func (m *MemoryStore) Appointments() []Appointment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Appointment(nil), m.appointments...)
}

func trim[T any](recs []T, max int) []T {
	if max <= 0 || len(recs) <= max {
		return recs
	}
	return recs[len(recs)-max:]
}
