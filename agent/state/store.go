package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
)

var (
	ErrDuplicateID       = errors.New("duplicate entity id")
	ErrNotFound          = errors.New("entity not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoCompanyProfile  = errors.New("company profile is not set")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// StoreOption customizes EntityStore.
type StoreOption func(*EntityStore)

func WithClock(now func() time.Time) StoreOption {
	return func(s *EntityStore) {
		if now != nil {
			s.now = now
		}
	}
}

// EntityStore is the in-memory holder of one session's business entities.
// Build one per session; it is never shared implicitly.
type EntityStore struct {
	mu sync.RWMutex

	company       *CompanyProfile
	customers     []CustomerProfile
	customerIndex map[string]int
	strategies    []StrategyReport
	strategyIDs   map[string]struct{}
	conversation  []ConversationEntry

	now func() time.Time
}

func NewEntityStore(opts ...StoreOption) *EntityStore {
	s := &EntityStore{
		customerIndex: make(map[string]int, 16),
		strategyIDs:   make(map[string]struct{}, 8),
		now:           time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

/* ---------------------------- Company profile ---------------------------- */

// SetCompanyProfile replaces the active profile. No merge with the previous one.
func (s *EntityStore) SetCompanyProfile(profile CompanyProfile) error {
	if err := validateEntity("company profile", profile); err != nil {
		return err
	}

	now := s.now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.company = &profile
	return nil
}

func (s *EntityStore) CompanyProfile() (CompanyProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.company == nil {
		return CompanyProfile{}, false
	}
	return *s.company, true
}

func (s *EntityStore) UpdateCompanyProfile(patch CompanyProfilePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.company == nil {
		return ErrNoCompanyProfile
	}

	next := *s.company
	patch.apply(&next)
	if err := validateEntity("company profile", next); err != nil {
		return err
	}
	next.UpdatedAt = s.now().UTC()
	s.company = &next
	return nil
}

/* ------------------------------- Customers ------------------------------- */

// AddCustomer appends a lead. A record without a status enters the funnel as prospect.
func (s *EntityStore) AddCustomer(customer CustomerProfile) error {
	if customer.Status == "" {
		customer.Status = StatusProspect
	}
	if !customer.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", contractx.ErrValidation, customer.Status)
	}
	if err := validateEntity("customer", customer); err != nil {
		return err
	}

	now := s.now().UTC()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.customerIndex[customer.ID]; exists {
		return fmt.Errorf("%w: customer %s", ErrDuplicateID, customer.ID)
	}
	s.customerIndex[customer.ID] = len(s.customers)
	s.customers = append(s.customers, customer)
	return nil
}

// Customers returns every lead in insertion order.
func (s *EntityStore) Customers() []CustomerProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CustomerProfile(nil), s.customers...)
}

func (s *EntityStore) Customer(id string) (CustomerProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.customerIndex[id]
	if !ok {
		return CustomerProfile{}, false
	}
	return s.customers[idx], true
}

func (s *EntityStore) UpdateCustomer(id string, patch CustomerPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.customerIndex[id]
	if !ok {
		return fmt.Errorf("%w: customer %s", ErrNotFound, id)
	}

	next := s.customers[idx]
	patch.apply(&next)
	if err := validateEntity("customer", next); err != nil {
		return err
	}
	next.UpdatedAt = s.now().UTC()
	s.customers[idx] = next
	return nil
}

func (s *EntityStore) TransitionCustomerStatus(id string, to CustomerStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.customerIndex[id]
	if !ok {
		return fmt.Errorf("%w: customer %s", ErrNotFound, id)
	}

	current := &s.customers[idx]
	if !current.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}
	current.Status = to
	current.UpdatedAt = s.now().UTC()
	return nil
}

/* ------------------------------ Strategies ------------------------------- */

func (s *EntityStore) AddStrategy(report StrategyReport) error {
	if !report.Type.Valid() {
		return fmt.Errorf("%w: unknown strategy type %q", contractx.ErrValidation, report.Type)
	}
	if err := validateEntity("strategy report", report); err != nil {
		return err
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = s.now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.strategyIDs[report.ID]; exists {
		return fmt.Errorf("%w: strategy %s", ErrDuplicateID, report.ID)
	}
	s.strategyIDs[report.ID] = struct{}{}
	s.strategies = append(s.strategies, report.clone())
	return nil
}

func (s *EntityStore) Strategies() []StrategyReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]StrategyReport, len(s.strategies))
	for i, r := range s.strategies {
		out[i] = r.clone()
	}
	return out
}

/* -------------------------------- Metrics -------------------------------- */

// BusinessMetrics recomputes from the current customer set on every call.
func (s *EntityStore) BusinessMetrics() BusinessMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeMetrics(s.customers)
}

func (s *EntityStore) Funnel() []StageCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeFunnel(s.customers)
}

/* ----------------------------- Conversation ------------------------------ */

// AppendConversation stamps ID and time when absent and returns the stored entry.
func (s *EntityStore) AppendConversation(entry ConversationEntry) ConversationEntry {
	if entry.ID == "" {
		entry.ID = ulid.Make().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	entry = entry.clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversation = append(s.conversation, entry)
	return entry
}

func (s *EntityStore) ConversationHistory() []ConversationEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ConversationEntry, len(s.conversation))
	for i, e := range s.conversation {
		out[i] = e.clone()
	}
	return out
}

func validateEntity(kind string, v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s: %v", contractx.ErrValidation, kind, err)
	}
	return nil
}
