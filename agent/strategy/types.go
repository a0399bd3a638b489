package strategy

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	statex "github.com/tanpawarit/Chative-Business-Assistant/agent/state"
)

// SourceProfile describes the operator's company as seen by the generator.
type SourceProfile struct {
	CompanyName          string   `json:"company_name"`
	MainProducts         []string `json:"main_products"`
	CoreAdvantages       []string `json:"core_advantages"`
	Certifications       []string `json:"certifications"`
	IdealCustomerProfile string   `json:"ideal_customer_profile,omitempty"`
	TargetMarkets        string   `json:"target_markets,omitempty"`
	ContactPerson        string   `json:"contact_person,omitempty"`
	ContactTitle         string   `json:"contact_title,omitempty"`
	WebsiteURL           string   `json:"website_url,omitempty"`
}

// SourceFromCompany derives a minimal seller profile from the stored company.
func SourceFromCompany(c statex.CompanyProfile) SourceProfile {
	return SourceProfile{
		CompanyName: c.Name,
		WebsiteURL:  c.Website,
	}
}

type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadReplied   LeadStatus = "replied"
	LeadQualified LeadStatus = "qualified"
	LeadConverted LeadStatus = "converted"
)

// LeadProfile is the target of an outreach strategy. MatchScore is an
// independent 0-100 fit score, normally from ScoreLead.
type LeadProfile struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Country     string     `json:"country"`
	Industry    string     `json:"industry"`
	Description string     `json:"description"`
	Contact     string     `json:"contact"`
	Title       string     `json:"title"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	MatchScore  int        `json:"match_score"`
	Status      LeadStatus `json:"status"`

	CompanySize      string `json:"company_size,omitempty"`
	Budget           string `json:"budget,omitempty"`
	PurchaseTimeline string `json:"purchase_timeline,omitempty"`
}

type ActionSteps struct {
	Step1 string `json:"step1"`
	Step2 string `json:"step2"`
}

// Strategy is one generated outreach artifact.
type Strategy struct {
	CustomerID       string      `json:"customer_id"`
	TargetName       string      `json:"target_name"`
	Icebreaker       string      `json:"icebreaker"`
	ValueProposition string      `json:"value_proposition"`
	ActionSteps      ActionSteps `json:"action_steps"`
	EmailDraft       string      `json:"email_draft"`
	Confidence       float64     `json:"confidence"`
	Insights         []string    `json:"insights,omitempty"`
	GeneratedAt      time.Time   `json:"generated_at"`
}

func (s Strategy) Quality() Quality {
	return Band(s.Confidence)
}

// Report freezes the artifact into a StrategyReport the entity store can keep.
func (s Strategy) Report(now time.Time) statex.StrategyReport {
	return statex.StrategyReport{
		ID:              uuid.NewString(),
		Title:           fmt.Sprintf("Personalized Outreach: %s", s.TargetName),
		Type:            statex.StrategyOutreach,
		Content:         s.ValueProposition + "\n\n" + s.EmailDraft,
		TargetCustomers: []string{s.CustomerID},
		SuccessMetrics:  []string{"Reply within 7 days", "Discovery call booked"},
		Timeline:        "2 weeks",
		CreatedAt:       now.UTC(),
	}
}

type Quality string

const (
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"
)

func Band(confidence float64) Quality {
	switch {
	case confidence >= 0.8:
		return QualityHigh
	case confidence >= 0.6:
		return QualityMedium
	default:
		return QualityLow
	}
}
