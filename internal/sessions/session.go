// Package sessions holds short-lived conversation state. A session is
// scratch space for the current exchange: losing one resets the dialog to
// the menu but never touches the customer profile.
package sessions

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/panesgr/chatbot-backend/internal/catalog"
	"github.com/panesgr/chatbot-backend/internal/customers"
)

// State names the conversation position the next inbound message is
// interpreted against.
type State string

const (
	StateWelcome               State = "welcome"
	StateMenu                  State = "menu"
	StateSearch                State = "search"
	StateProductList           State = "product_list"
	StateProductChoice         State = "product_choice"
	StateCategories            State = "categories"
	StateSubscriptionFrequency State = "subscription_frequency"
	StateSubscriptionDay       State = "subscription_day"
	StateSubscriptionConfirm   State = "subscription_confirm"
	StateMyAccount             State = "my_account"
	StateCustomerService       State = "customer_service"
	StateComplaintForm         State = "complaint_form"
	StateProductRequest        State = "product_request"
	StateFeedback              State = "feedback"
	StateStoreSelection        State = "store_selection"
	StateFranchise             State = "franchise"
	StateWholesale             State = "wholesale"
	StateWholesaleInquiry      State = "wholesale_inquiry"
	StateWholesalePhone        State = "wholesale_phone"
)

// Known lists every reachable state. The conversation router refuses to
// start unless it has a handler for each one.
func Known() []State {
	return []State{
		StateWelcome,
		StateMenu,
		StateSearch,
		StateProductList,
		StateProductChoice,
		StateCategories,
		StateSubscriptionFrequency,
		StateSubscriptionDay,
		StateSubscriptionConfirm,
		StateMyAccount,
		StateCustomerService,
		StateComplaintForm,
		StateProductRequest,
		StateFeedback,
		StateStoreSelection,
		StateFranchise,
		StateWholesale,
		StateWholesaleInquiry,
		StateWholesalePhone,
	}
}

// Continuation records why a detour state was entered, so the flow can
// resume once the detour completes.
type Continuation string

const (
	ContinuationNone      Continuation = ""
	ContinuationSubscribe Continuation = "subscribe"
)

// SubscriptionDraft accumulates the answers of the subscription dialog
// before the customer confirms. Price is the discounted price captured at
// product selection.
type SubscriptionDraft struct {
	ProductID   int64               `json:"product_id"`
	ProductName string              `json:"product_name"`
	Price       decimal.Decimal     `json:"price"`
	Frequency   customers.Frequency `json:"frequency,omitempty"`
	PickupDay   string              `json:"pickup_day,omitempty"`
	// FrequencyShown guards against re-printing the frequency prompt when
	// the frequency state re-enters itself on invalid input.
	FrequencyShown bool `json:"frequency_shown,omitempty"`
}

// AIMessage is one turn of the assistant passthrough transcript.
type AIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the per-identity conversation scratchpad.
type Session struct {
	Identity           string             `json:"identity"`
	State              State              `json:"state"`
	Page               int                `json:"page"`
	Results            []catalog.Product  `json:"results,omitempty"`
	NoDiscountCategory bool               `json:"no_discount_category,omitempty"`
	Selected           *catalog.Product   `json:"selected,omitempty"`
	Continuation       Continuation       `json:"continuation,omitempty"`
	Draft              *SubscriptionDraft `json:"draft,omitempty"`
	FormStep           int                `json:"form_step,omitempty"`
	FormValues         []string           `json:"form_values,omitempty"`
	AIMode             bool               `json:"ai_mode,omitempty"`
	AIHistory          []AIMessage        `json:"ai_history,omitempty"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// New returns a fresh session positioned at the welcome state.
func New(identity string) *Session {
	return &Session{Identity: identity, State: StateWelcome}
}

// Transition moves to the next state, leaving scratch fields intact; the
// target handler decides what it still needs.
func (s *Session) Transition(next State) {
	s.State = next
}

// ClearScratch drops everything tied to an in-flight flow. Called when the
// customer jumps back to the menu mid-dialog.
func (s *Session) ClearScratch() {
	s.Page = 0
	s.Results = nil
	s.NoDiscountCategory = false
	s.Selected = nil
	s.Continuation = ContinuationNone
	s.Draft = nil
	s.FormStep = 0
	s.FormValues = nil
	s.AIMode = false
	s.AIHistory = nil
}

// ToMenu clears the scratchpad and positions the session on the menu.
func (s *Session) ToMenu() {
	s.ClearScratch()
	s.State = StateMenu
}
