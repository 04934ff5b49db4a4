// Package conversation is the state machine behind the webhook: it maps
// (current session state, inbound text) to (reply text, next state, side
// effects on the customer profile).
package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/panesgr/chatbot-backend/internal/ai"
	"github.com/panesgr/chatbot-backend/internal/catalog"
	"github.com/panesgr/chatbot-backend/internal/customers"
	"github.com/panesgr/chatbot-backend/internal/notify"
	"github.com/panesgr/chatbot-backend/internal/sessions"
	"github.com/panesgr/chatbot-backend/pkg/logger"
	"github.com/panesgr/chatbot-backend/pkg/metrics"
)

const (
	searchLimit = 20
	pageSize    = 10

	defaultSupportEmail = "support@panes.gr"
)

// Catalog is the slice of the catalog client the handlers use.
type Catalog interface {
	Search(ctx context.Context, query string, limit int) []catalog.Product
	Popular(ctx context.Context, limit int) []catalog.Product
	OnSale(ctx context.Context, limit int) []catalog.Product
	ByTag(ctx context.Context, tagSlug string, limit int) []catalog.Product
}

// turn bundles everything a handler may read or mutate for one message.
type turn struct {
	text     string
	customer *customers.Customer
	session  *sessions.Session
}

type handlerFunc func(ctx context.Context, t *turn) string

// Service routes inbound messages. Turns for the same identity are
// serialized by a per-identity lock; different identities proceed
// concurrently.
type Service struct {
	customers customers.Store
	sessions  sessions.Store
	catalog   Catalog
	assistant ai.Client
	mailer    notify.Mailer
	metrics   *metrics.ConversationMetrics
	logg      *logger.Logger

	historyTurns int
	supportEmail string
	handlers     map[sessions.State]handlerFunc

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	now   func() time.Time
	newID func() string
}

// Deps are the collaborators the conversation service is built from.
// Assistant and Metrics may be nil; Mailer defaults to a no-op.
type Deps struct {
	Customers    customers.Store
	Sessions     sessions.Store
	Catalog      Catalog
	Assistant    ai.Client
	Mailer       notify.Mailer
	Metrics      *metrics.ConversationMetrics
	Logger       *logger.Logger
	HistoryTurns int
	SupportEmail string
}

// New builds the service and verifies the handler map covers every known
// state, so a missing handler is a startup error instead of a silent
// fallback.
func New(deps Deps) (*Service, error) {
	if deps.Customers == nil || deps.Sessions == nil || deps.Catalog == nil || deps.Logger == nil {
		return nil, fmt.Errorf("conversation service: missing required dependency")
	}
	if deps.Mailer == nil {
		deps.Mailer = notify.Noop{}
	}
	if deps.HistoryTurns <= 0 {
		deps.HistoryTurns = 10
	}
	if deps.SupportEmail == "" {
		deps.SupportEmail = defaultSupportEmail
	}

	s := &Service{
		customers:    deps.Customers,
		sessions:     deps.Sessions,
		catalog:      deps.Catalog,
		assistant:    deps.Assistant,
		mailer:       deps.Mailer,
		metrics:      deps.Metrics,
		logg:         deps.Logger,
		historyTurns: deps.HistoryTurns,
		supportEmail: deps.SupportEmail,
		locks:        make(map[string]*sync.Mutex),
		now:          time.Now,
		newID:        func() string { return uuid.NewString() },
	}

	s.handlers = map[sessions.State]handlerFunc{
		sessions.StateWelcome:               s.handleWelcome,
		sessions.StateMenu:                  s.handleMenu,
		sessions.StateSearch:                s.handleSearch,
		sessions.StateProductList:           s.handleProductList,
		sessions.StateProductChoice:         s.handleProductChoice,
		sessions.StateCategories:            s.handleCategories,
		sessions.StateSubscriptionFrequency: s.handleSubscriptionFrequency,
		sessions.StateSubscriptionDay:       s.handleSubscriptionDay,
		sessions.StateSubscriptionConfirm:   s.handleSubscriptionConfirm,
		sessions.StateMyAccount:             s.handleMyAccount,
		sessions.StateCustomerService:       s.handleCustomerService,
		sessions.StateComplaintForm:         s.handleComplaintForm,
		sessions.StateProductRequest:        s.handleProductRequest,
		sessions.StateFeedback:              s.handleFeedback,
		sessions.StateStoreSelection:        s.handleStoreSelection,
		sessions.StateFranchise:             s.handleFranchise,
		sessions.StateWholesale:             s.handleWholesale,
		sessions.StateWholesaleInquiry:      s.handleWholesaleInquiry,
		sessions.StateWholesalePhone:        s.handleWholesalePhone,
	}
	for _, state := range sessions.Known() {
		if _, ok := s.handlers[state]; !ok {
			return nil, fmt.Errorf("conversation service: no handler for state %q", state)
		}
	}
	return s, nil
}

// Handle produces the reply for one inbound message. It never returns an
// empty reply for a storage failure on save: by then the reply is already
// composed, so the failure is logged and the text still goes out.
func (s *Service) Handle(ctx context.Context, identity, text string) (string, error) {
	unlock := s.lockIdentity(identity)
	defer unlock()

	started := s.now()

	customer, _, err := s.customers.GetOrCreate(ctx, identity)
	if err != nil {
		return "", fmt.Errorf("loading customer: %w", err)
	}
	session, err := s.sessions.GetOrCreate(ctx, identity)
	if err != nil {
		return "", fmt.Errorf("loading session: %w", err)
	}

	ctx = s.logg.WithIdentity(ctx, identity)
	ctx = s.logg.WithState(ctx, string(session.State))

	t := &turn{
		text:     strings.TrimSpace(text),
		customer: customer,
		session:  session,
	}
	handledState := session.State
	reply := s.dispatch(ctx, t)

	customer.LastSeenAt = s.now()
	if err := s.customers.Save(ctx, customer); err != nil {
		s.logg.Error(ctx, "saving customer profile", err)
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logg.Error(ctx, "saving session", err)
	}

	s.metrics.ObserveMessage(string(handledState), s.now().Sub(started))
	return reply, nil
}

// dispatch applies global commands, AI passthrough, and the per-state
// handler, in that order. A panicking handler fails safe to the menu.
func (s *Service) dispatch(ctx context.Context, t *turn) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			s.logg.Error(ctx, "handler panic, resetting to menu", fmt.Errorf("%v", r))
			t.session.ToMenu()
			reply = "Κάτι πήγε στραβά. 🙏 Επιστρέψαμε στο κεντρικό μενού.\n\n" + menuText()
		}
	}()

	if reply, ok := s.globalCommand(ctx, t); ok {
		return reply
	}
	if t.session.AIMode && s.assistant != nil {
		return s.handleAI(ctx, t)
	}

	handler, ok := s.handlers[t.session.State]
	if !ok {
		handler = s.handleWelcome
	}
	return handler(ctx, t)
}

func (s *Service) lockIdentity(identity string) func() {
	s.locksMu.Lock()
	lock, ok := s.locks[identity]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[identity] = lock
	}
	s.locksMu.Unlock()

	lock.Lock()
	return lock.Unlock
}
