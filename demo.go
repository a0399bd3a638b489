package main

import (
	statex "github.com/tanpawarit/Chative-Business-Assistant/agent/state"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/strategy"
)

var demoCompany = statex.CompanyProfile{
	ID:           "company-1",
	Name:         "FactoryLink Manufacturing",
	Industry:     "Manufacturing",
	Size:         "50-200",
	Location:     "Shenzhen, China",
	Description:  "Contract manufacturer for electronics enclosures and precision metal parts.",
	ContactEmail: "sales@factorylink.example",
}

var demoSource = strategy.SourceProfile{
	CompanyName:          "FactoryLink Manufacturing",
	MainProducts:         []string{"Electronics", "Metal Parts"},
	CoreAdvantages:       []string{"competitive pricing", "ISO 9001 certified quality", "fast delivery"},
	Certifications:       []string{"ISO 9001"},
	IdealCustomerProfile: "Mid-size brands outsourcing hardware production",
	TargetMarkets:        "United States, Germany, United Kingdom",
	ContactPerson:        "Li Wei",
	ContactTitle:         "Business Development Manager",
}

// demoCustomers carry firmographics instead of fixed match scores; ScoreLead
// rates them 100 and 90.
var demoCustomers = []statex.CustomerProfile{
	{
		ID:               "lead-1",
		CompanyID:        demoCompany.ID,
		Name:             "John Smith",
		Position:         "Procurement Manager",
		Company:          "TechCorp Inc.",
		Industry:         "Consumer Electronics",
		Country:          "United States",
		Contact:          statex.ContactInfo{Email: "john.smith@techcorp.example"},
		Source:           "demo",
		Notes:            "Smart home device brand",
		CompanySize:      "500+",
		Budget:           "high",
		PurchaseTimeline: "3-6 months",
	},
	{
		ID:               "lead-2",
		CompanyID:        demoCompany.ID,
		Name:             "Sarah Johnson",
		Position:         "Supply Chain Director",
		Company:          "Global Manufacturing Ltd.",
		Industry:         "Industrial Equipment",
		Country:          "Germany",
		Contact:          statex.ContactInfo{Email: "sarah.johnson@globalmfg.example"},
		Source:           "demo",
		Notes:            "Automation equipment maker",
		Status:           statex.StatusQualified,
		CompanySize:      "200-500",
		Budget:           "high",
		PurchaseTimeline: "6-12 months",
	},
}

func (a *app) seedDemo() error {
	if err := a.store.SetCompanyProfile(demoCompany); err != nil {
		return err
	}
	for _, c := range demoCustomers {
		if err := a.store.AddCustomer(c); err != nil {
			return err
		}
	}
	a.source = demoSource
	return nil
}
