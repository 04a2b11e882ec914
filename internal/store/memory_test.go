package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreKeepsMostRecent(t *testing.T) {
	ms := NewMemoryStore(2)
	ctx := context.Background()
	for _, typ := range []string{"Zakat", "Sadqa", "Fitrana"} {
		require.NoError(t, ms.InsertDonation(ctx, Donation{Type: typ, CreatedAt: time.Now()}))
	}

	got := ms.Donations()
	require.Len(t, got, 2)
	assert.Equal(t, "Sadqa", got[0].Type)
	assert.Equal(t, "Fitrana", got[1].Type)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ms := NewMemoryStore(0)
	ctx := context.Background()
	require.NoError(t, ms.InsertRegistration(ctx, Registration{Name: "Ayesha", Course: "Web Development"}))
	require.NoError(t, ms.InsertAppointment(ctx, Appointment{Name: "Bilal", Date: "2026-10-20"}))

	regs := ms.Registrations()
	regs[0].Name = "changed"
	assert.Equal(t, "Ayesha", ms.Registrations()[0].Name)
	assert.Len(t, ms.Appointments(), 1)
}
