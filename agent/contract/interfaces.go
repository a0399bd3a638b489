package contract

import "context"

// InsightLookup stands in for an external research capability. Implementations
// may return an empty slice; callers bound the call with ctx.
type InsightLookup interface {
	LookupInsights(ctx context.Context, companyName, industry string) ([]string, error)
}

type ChatCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type SettingsStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
