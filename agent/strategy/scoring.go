package strategy

import (
	"strings"

	statex "github.com/tanpawarit/Chative-Business-Assistant/agent/state"
)

const (
	baseLeadScore     = 50
	maxLeadScore      = 100
	defaultMinQualify = 60
)

type scoreBand struct {
	needles []string
	bonus   int
}

// Bands are checked in order and the first hit wins.
var (
	sizeBands = []scoreBand{
		{needles: []string{"1000+", "500+"}, bonus: 20},
		{needles: []string{"100-500", "200-500"}, bonus: 15},
		{needles: []string{"50-200", "100-200"}, bonus: 10},
	}
	// "medium-high" contains "high" and lands in the top band.
	budgetBands = []scoreBand{
		{needles: []string{"high"}, bonus: 15},
		{needles: []string{"medium"}, bonus: 5},
	}
	timelineBands = []scoreBand{
		{needles: []string{"3-6"}, bonus: 15},
		{needles: []string{"6-12"}, bonus: 10},
		{needles: []string{"12+", "over 12"}, bonus: 5},
	}
)

// DefaultQualifiedIndustries are the verticals outreach is worth running for.
var DefaultQualifiedIndustries = []string{
	"Consumer Electronics",
	"Home Goods",
	"Automotive",
	"Medical Devices",
	"Industrial Equipment",
}

// ScoreLead rates a lead 0-100 from company size, budget and purchase
// timeline on top of a base of 50.
func ScoreLead(lead LeadProfile) int {
	score := baseLeadScore +
		bandBonus(sizeBands, lead.CompanySize) +
		bandBonus(budgetBands, lead.Budget) +
		bandBonus(timelineBands, lead.PurchaseTimeline)
	if score > maxLeadScore {
		return maxLeadScore
	}
	return score
}

func bandBonus(bands []scoreBand, value string) int {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0
	}
	for _, b := range bands {
		for _, n := range b.needles {
			if strings.Contains(value, n) {
				return b.bonus
			}
		}
	}
	return 0
}

type Qualifier struct {
	MinScore   int
	Industries []string
}

func DefaultQualifier() Qualifier {
	return Qualifier{MinScore: defaultMinQualify, Industries: DefaultQualifiedIndustries}
}

// Qualified requires a company name and email, a match score of at least
// MinScore and an industry on the allow-list. An empty allow-list admits any
// industry.
func (q Qualifier) Qualified(lead LeadProfile) bool {
	if strings.TrimSpace(lead.Name) == "" || strings.TrimSpace(lead.Email) == "" {
		return false
	}
	if lead.MatchScore < q.MinScore {
		return false
	}
	if len(q.Industries) == 0 {
		return true
	}
	industry := strings.TrimSpace(lead.Industry)
	for _, allowed := range q.Industries {
		if strings.EqualFold(industry, allowed) {
			return true
		}
	}
	return false
}

// LeadFromCustomer builds an outreach target from a stored customer and
// scores it.
func LeadFromCustomer(c statex.CustomerProfile) LeadProfile {
	lead := LeadProfile{
		ID:               c.ID,
		Name:             c.Company,
		Country:          c.Country,
		Industry:         c.Industry,
		Description:      c.Notes,
		Contact:          c.Name,
		Title:            c.Position,
		Email:            c.Contact.Email,
		Phone:            c.Contact.Phone,
		Status:           leadStatusFor(c.Status),
		CompanySize:      c.CompanySize,
		Budget:           c.Budget,
		PurchaseTimeline: c.PurchaseTimeline,
	}
	lead.MatchScore = ScoreLead(lead)
	return lead
}

func leadStatusFor(s statex.CustomerStatus) LeadStatus {
	switch s {
	case statex.StatusQualified:
		return LeadQualified
	case statex.StatusProposal, statex.StatusNegotiation:
		return LeadReplied
	case statex.StatusClosed:
		return LeadConverted
	default:
		return LeadNew
	}
}
