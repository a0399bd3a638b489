package state

const (
	averageResponseHours       = 2.5
	pipelineValuePerLead int64 = 10000
	customerSatisfaction       = 85.0
)

// BusinessMetrics is derived from the current customer set and never stored.
type BusinessMetrics struct {
	TotalLeads           int     `json:"total_leads"`
	QualifiedLeads       int     `json:"qualified_leads"`
	ConversionRate       float64 `json:"conversion_rate"` // qualified/total in [0,1]
	AverageResponseHours float64 `json:"average_response_time"`
	RevenuePipeline      int64   `json:"revenue_pipeline"`
	CustomerSatisfaction float64 `json:"customer_satisfaction"`
}

// ConversionPercent is ConversionRate scaled to 0..100.
func (m BusinessMetrics) ConversionPercent() float64 {
	return m.ConversionRate * 100
}

type StageCount struct {
	Status CustomerStatus `json:"status"`
	Count  int            `json:"count"`
}

// ComputeMetrics counts a lead as qualified once it has moved past prospect.
func ComputeMetrics(customers []CustomerProfile) BusinessMetrics {
	total := len(customers)
	qualified := 0
	for _, c := range customers {
		if c.Status != StatusProspect {
			qualified++
		}
	}

	rate := 0.0
	if total > 0 {
		rate = float64(qualified) / float64(total)
	}

	return BusinessMetrics{
		TotalLeads:           total,
		QualifiedLeads:       qualified,
		ConversionRate:       rate,
		AverageResponseHours: averageResponseHours,
		RevenuePipeline:      int64(total) * pipelineValuePerLead,
		CustomerSatisfaction: customerSatisfaction,
	}
}

// ComputeFunnel returns one bucket per stage in funnel order, including empty ones.
func ComputeFunnel(customers []CustomerProfile) []StageCount {
	stages := FunnelStages()
	out := make([]StageCount, len(stages))
	for i, s := range stages {
		out[i].Status = s
	}
	for _, c := range customers {
		if r := c.Status.rank(); r >= 0 {
			out[r].Count++
		}
	}
	return out
}
