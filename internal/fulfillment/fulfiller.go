// Package fulfillment maps Dialogflow intents to handlers and builds the
// webhook reply. Handlers never perform side effects inline; they hand
// tasks back to the caller to run after the reply is written.
package fulfillment

import (
	"context"
	"time"

	"saylani-fulfillment/internal/log"
	"saylani-fulfillment/internal/mail"
	"saylani-fulfillment/internal/metrics"
	"saylani-fulfillment/internal/store"
	"saylani-fulfillment/internal/tasks"
	"saylani-fulfillment/internal/types"
)

// Intent names as configured in the Dialogflow agent.
const (
	IntentWelcome      = "Default Welcome Intent"
	IntentFallback     = "Default Fallback Intent"
	IntentInfo         = "RotiBank_Info"
	IntentLocations    = "RotiBank_Location"
	IntentDonate       = "RotiBank_Donate"
	IntentRegistration = "IT_Registration"
	IntentAppointment  = "BookAppointment"

	ActionWelcome = "input.welcome"
	ActionUnknown = "input.unknown"
)

// Completer produces a free-text answer for an unmatched query.
type Completer interface {
	Complete(ctx context.Context, query string) (string, error)
}

type Options struct {
	Completer  Completer
	Mailer     mail.Sender
	Store      store.RecordStore
	AdminEmail string
	AITimeout  time.Duration
	Now        func() time.Time
}

type handlerFunc func(ctx context.Context, a *Agent)

type route struct {
	name string
	fn   handlerFunc
}

type Fulfiller struct {
	completer  Completer
	mailer     mail.Sender
	store      store.RecordStore
	adminEmail string
	aiTimeout  time.Duration
	now        func() time.Time

	routes   map[string]route
	fallback route
}

// Result is the outcome of one webhook call.
type Result struct {
	Handler  string
	Response *types.WebhookResponse
	Tasks    []tasks.Task
}

func New(opts Options) *Fulfiller {
	if opts.Mailer == nil {
		opts.Mailer = mail.LogSender{}
	}
	if opts.AITimeout <= 0 {
		opts.AITimeout = 4 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	f := &Fulfiller{
		completer:  opts.Completer,
		mailer:     opts.Mailer,
		store:      opts.Store,
		adminEmail: opts.AdminEmail,
		aiTimeout:  opts.AITimeout,
		now:        opts.Now,
	}

	welcome := route{"welcome", f.welcome}
	f.fallback = route{"fallback", f.answerWithAI}
	f.routes = map[string]route{
		IntentWelcome:      welcome,
		ActionWelcome:      welcome,
		IntentFallback:     f.fallback,
		ActionUnknown:      f.fallback,
		IntentInfo:         {"info", f.info},
		IntentLocations:    {"locations", f.locations},
		IntentDonate:       {"donation", f.donation},
		IntentRegistration: {"registration", f.registration},
		IntentAppointment:  {"appointment", f.appointment},
	}
	return f
}

// Handle runs exactly one handler for the request. Anything not in the
// intent table, including the platform's no-match intent, goes to the
// generative fallback.
func (f *Fulfiller) Handle(ctx context.Context, req *types.WebhookRequest) Result {
	a := newAgent(req)
	r, ok := f.routes[a.Intent]
	if !ok {
		r = f.fallback
	}

	logger := log.WithComponent("fulfillment").With().
		Str("session", a.Session).
		Str("intent", a.Intent).
		Str("handler", r.name).
		Logger()
	logger.Info().Msg("intent received")

	metrics.IntentsTotal.WithLabelValues(r.name).Inc()
	r.fn(ctx, a)

	return Result{Handler: r.name, Response: a.response(), Tasks: a.tasks}
}
