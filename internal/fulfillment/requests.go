package fulfillment

import (
	"context"
	"fmt"
	"strings"

	"saylani-fulfillment/internal/log"
	"saylani-fulfillment/internal/mail"
	"saylani-fulfillment/internal/store"
	"saylani-fulfillment/internal/tasks"
)

const (
	defaultName     = "Student"
	defaultCategory = "General"
	missingContact  = "—"
)

func (f *Fulfiller) donation(_ context.Context, a *Agent) {
	choice := param(a.Params, "donation_type", "Donation")
	email := param(a.Params, "email")

	message := fmt.Sprintf("JazakAllah! To donate (%s):\n", orDefault(choice, defaultCategory)) +
		"1. Bank Transfer\n2. Online (saylaniwelfare.com)\n3. Visit any center."

	f.notifyAdmin(a, "New Donation Query",
		fmt.Sprintf("User interested in: %s\nQuery: %s\nEmail: %s", orDefault(choice, defaultCategory), a.Query, orDefault(email, missingContact)))
	f.confirmToUser(a, email, "Donation Details - Saylani Welfare", message)

	rec := store.Donation{Type: orDefault(choice, defaultCategory), Query: a.Query, CreatedAt: f.now()}
	f.record(a, "donations", func(ctx context.Context, s store.RecordStore) error {
		return s.InsertDonation(ctx, rec)
	})

	addWithChips(a, message, IntentDonate)
}

func (f *Fulfiller) registration(_ context.Context, a *Agent) {
	name := orDefault(param(a.Params, "person"), defaultName)
	course := orDefault(param(a.Params, "Courses", "course"), defaultCategory)
	email := param(a.Params, "email")
	phone := param(a.Params, "phone", "phone-number")

	message := fmt.Sprintf("Thank you %s.\nReceived request for: %s\nWe will contact you at %s or %s.",
		name, course, orDefault(phone, missingContact), orDefault(email, missingContact))

	f.notifyAdmin(a, "New IT Registration",
		fmt.Sprintf("Name: %s\nCourse: %s\nPhone: %s\nEmail: %s",
			name, course, orDefault(phone, missingContact), orDefault(email, missingContact)))
	f.confirmToUser(a, email, "Registration Received - Saylani Mass IT", message)

	rec := store.Registration{Name: name, Course: course, Email: email, Phone: phone, CreatedAt: f.now()}
	f.record(a, "it_registrations", func(ctx context.Context, s store.RecordStore) error {
		return s.InsertRegistration(ctx, rec)
	})

	addWithChips(a, message, IntentRegistration)
}

// appointment books when the agent collected any booking detail, and
// otherwise explains how to book.
func (f *Fulfiller) appointment(_ context.Context, a *Agent) {
	name := param(a.Params, "person")
	email := param(a.Params, "email")
	phone := param(a.Params, "phone", "phone-number")
	date := dateParam(param(a.Params, "date"))
	at := timeParam(param(a.Params, "time"))
	purpose := param(a.Params, "purpose", "reason")

	if name == "" && email == "" && phone == "" && date == "" && at == "" {
		addWithChips(a, appointmentInfoText, IntentAppointment)
		return
	}

	name = orDefault(name, defaultName)
	message := fmt.Sprintf("Thank you %s. Your appointment request for %s at %s has been received.\n"+
		"Our team will confirm at %s or %s.\nJazakAllah!",
		name, orDefault(date, missingContact), orDefault(at, missingContact),
		orDefault(phone, missingContact), orDefault(email, missingContact))

	f.notifyAdmin(a, "New Appointment Request",
		fmt.Sprintf("Name: %s\nDate: %s\nTime: %s\nPurpose: %s\nPhone: %s\nEmail: %s",
			name, orDefault(date, missingContact), orDefault(at, missingContact),
			orDefault(purpose, defaultCategory), orDefault(phone, missingContact), orDefault(email, missingContact)))
	f.confirmToUser(a, email, "Appointment Request Received - Saylani Welfare", message)

	rec := store.Appointment{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Date:      date,
		Time:      at,
		Purpose:   orDefault(purpose, defaultCategory),
		CreatedAt: f.now(),
	}
	f.record(a, "appointments", func(ctx context.Context, s store.RecordStore) error {
		return s.InsertAppointment(ctx, rec)
	})

	addWithChips(a, message, IntentAppointment)
}

func (f *Fulfiller) notifyAdmin(a *Agent, subject, text string) {
	if strings.TrimSpace(f.adminEmail) == "" {
		logger := log.WithComponent("fulfillment")
		logger.Warn().Str("subject", subject).Msg("no admin address configured; notification skipped")
		return
	}
	f.sendEmail(a, mail.Email{To: f.adminEmail, Subject: subject, Text: text})
}

// confirmToUser mails the end user only when the address looks usable.
func (f *Fulfiller) confirmToUser(a *Agent, to, subject, text string) {
	if !mail.ValidAddress(to) {
		return
	}
	f.sendEmail(a, mail.Email{To: strings.TrimSpace(to), Subject: subject, Text: text})
}

func (f *Fulfiller) sendEmail(a *Agent, e mail.Email) {
	mailer := f.mailer
	a.Defer(tasks.New(tasks.KindEmail, e.To, func(ctx context.Context) error {
		return mailer.Send(ctx, e)
	}))
}

func (f *Fulfiller) record(a *Agent, table string, insert func(ctx context.Context, s store.RecordStore) error) {
	if f.store == nil {
		return
	}
	s := f.store
	a.Defer(tasks.New(tasks.KindRecord, table, func(ctx context.Context) error {
		return insert(ctx, s)
	}))
}
