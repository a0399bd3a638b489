package state

import (
	"time"

	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
)

// CompanyProfile is the operator's own business. Exactly one is active per store.
type CompanyProfile struct {
	ID           string    `json:"id" validate:"required"`
	Name         string    `json:"name" validate:"required"`
	Industry     string    `json:"industry" validate:"required"`
	Size         string    `json:"size" validate:"required"`
	Location     string    `json:"location" validate:"required"`
	Description  string    `json:"description"`
	Website      string    `json:"website,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty" validate:"omitempty,email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CompanyProfilePatch carries a partial update; nil fields are left untouched.
type CompanyProfilePatch struct {
	Name         *string `json:"name,omitempty"`
	Industry     *string `json:"industry,omitempty"`
	Size         *string `json:"size,omitempty"`
	Location     *string `json:"location,omitempty"`
	Description  *string `json:"description,omitempty"`
	Website      *string `json:"website,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
}

func (p CompanyProfilePatch) apply(dst *CompanyProfile) {
	setIfPresent(&dst.Name, p.Name)
	setIfPresent(&dst.Industry, p.Industry)
	setIfPresent(&dst.Size, p.Size)
	setIfPresent(&dst.Location, p.Location)
	setIfPresent(&dst.Description, p.Description)
	setIfPresent(&dst.Website, p.Website)
	setIfPresent(&dst.ContactEmail, p.ContactEmail)
}

type ContactInfo struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// CustomerProfile is a lead tracked through the sales funnel. Records are never
// deleted; they are closed instead.
type CustomerProfile struct {
	ID        string      `json:"id" validate:"required"`
	CompanyID string      `json:"company_id" validate:"required"`
	Name      string      `json:"name" validate:"required"`
	Position  string      `json:"position"`
	Company   string      `json:"company"`
	Industry  string      `json:"industry"`
	Country   string      `json:"country,omitempty"`
	Contact   ContactInfo `json:"contact_info"`
	// Firmographic signals used for lead scoring, free text such as "500+",
	// "high" or "3-6 months".
	CompanySize      string         `json:"company_size,omitempty"`
	Budget           string         `json:"budget,omitempty"`
	PurchaseTimeline string         `json:"purchase_timeline,omitempty"`
	Status           CustomerStatus `json:"status"`
	Source           string         `json:"source"`
	Notes            string         `json:"notes"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// CustomerPatch updates lead fields. Status is deliberately absent: it only
// changes through TransitionCustomerStatus.
type CustomerPatch struct {
	Name     *string `json:"name,omitempty"`
	Position *string `json:"position,omitempty"`
	Company  *string `json:"company,omitempty"`
	Industry *string `json:"industry,omitempty"`
	Country  *string `json:"country,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	Source   *string `json:"source,omitempty"`
	Notes    *string `json:"notes,omitempty"`

	CompanySize      *string `json:"company_size,omitempty"`
	Budget           *string `json:"budget,omitempty"`
	PurchaseTimeline *string `json:"purchase_timeline,omitempty"`
}

func (p CustomerPatch) apply(dst *CustomerProfile) {
	setIfPresent(&dst.Name, p.Name)
	setIfPresent(&dst.Position, p.Position)
	setIfPresent(&dst.Company, p.Company)
	setIfPresent(&dst.Industry, p.Industry)
	setIfPresent(&dst.Country, p.Country)
	setIfPresent(&dst.Contact.Email, p.Email)
	setIfPresent(&dst.Contact.Phone, p.Phone)
	setIfPresent(&dst.Contact.LinkedIn, p.LinkedIn)
	setIfPresent(&dst.Source, p.Source)
	setIfPresent(&dst.Notes, p.Notes)
	setIfPresent(&dst.CompanySize, p.CompanySize)
	setIfPresent(&dst.Budget, p.Budget)
	setIfPresent(&dst.PurchaseTimeline, p.PurchaseTimeline)
}

type StrategyType string

const (
	StrategyOutreach StrategyType = "outreach"
	StrategyFollowUp StrategyType = "follow_up"
	StrategyProposal StrategyType = "proposal"
	StrategyAnalysis StrategyType = "analysis"
)

func (t StrategyType) Valid() bool {
	switch t {
	case StrategyOutreach, StrategyFollowUp, StrategyProposal, StrategyAnalysis:
		return true
	default:
		return false
	}
}

// StrategyReport is immutable once stored; regeneration yields a new report.
type StrategyReport struct {
	ID              string       `json:"id" validate:"required"`
	Title           string       `json:"title" validate:"required"`
	Type            StrategyType `json:"type" validate:"required"`
	Content         string       `json:"content"`
	TargetCustomers []string     `json:"target_customers"`
	SuccessMetrics  []string     `json:"success_metrics"`
	Timeline        string       `json:"timeline"`
	CreatedAt       time.Time    `json:"created_at"`
}

func (r StrategyReport) clone() StrategyReport {
	r.TargetCustomers = append([]string(nil), r.TargetCustomers...)
	r.SuccessMetrics = append([]string(nil), r.SuccessMetrics...)
	return r
}

// ConversationEntry records one interaction. The log is append-only.
type ConversationEntry struct {
	ID          string                `json:"id"`
	Input       string                `json:"input"`
	Command     contractx.AICommand   `json:"command"`
	Response    string                `json:"response"`
	PayloadKind contractx.PayloadKind `json:"payload_kind,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

func (e ConversationEntry) clone() ConversationEntry {
	e.Command.Entities = append([]string(nil), e.Command.Entities...)
	return e
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
