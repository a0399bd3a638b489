package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/settings"
	statex "github.com/tanpawarit/Chative-Business-Assistant/agent/state"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	a, err := newApp(context.Background(), AppConfig{
		DeviceID:        "test-device",
		SettingsBackend: backendMemory,
		InsightsBackend: insightsStatic,
		SeedDemo:        true,
	})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestAppConfigValidate(t *testing.T) {
	assert.NoError(t, AppConfig{DeviceID: "d", SettingsBackend: "memory", InsightsBackend: "static"}.Validate())
	assert.Error(t, AppConfig{DeviceID: "d", SettingsBackend: "sqlite", InsightsBackend: "static"}.Validate())
	assert.Error(t, AppConfig{DeviceID: "d", SettingsBackend: "memory", InsightsBackend: "web"}.Validate())
	assert.Error(t, AppConfig{SettingsBackend: "memory", InsightsBackend: "static"}.Validate())
}

func TestHandleLineMetricsFromDemoData(t *testing.T) {
	a := newTestApp(t)

	got, err := a.handleLine(context.Background(), "show customer progress")
	require.NoError(t, err)
	assert.Contains(t, got, "**Total Leads:** 2")
	assert.Contains(t, got, "**Conversion Rate:** 50.0%")
	assert.Len(t, a.store.ConversationHistory(), 1)
}

func TestHandleLineOutreachStoresReports(t *testing.T) {
	a := newTestApp(t)

	got, err := a.handleLine(context.Background(), "/outreach")
	require.NoError(t, err)
	assert.Contains(t, got, "TechCorp Inc.")
	assert.Contains(t, got, "lead score 100, qualified")
	assert.Contains(t, got, "lead score 90, qualified")
	assert.Contains(t, got, "Stored 2 strategy reports.")
	assert.Len(t, a.store.Strategies(), 2)

	analytics, err := a.handleLine(context.Background(), "show analytics data")
	require.NoError(t, err)
	assert.Contains(t, analytics, "**Strategy reports on file:** 2")
}

func TestOutreachUsesStoredCustomersAndSkipsClosed(t *testing.T) {
	a, err := newApp(context.Background(), AppConfig{
		DeviceID:        "test-device",
		SettingsBackend: backendMemory,
		InsightsBackend: insightsStatic,
	})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	ctx := context.Background()

	got, err := a.handleLine(ctx, "/outreach")
	require.NoError(t, err)
	assert.Equal(t, "No leads to build outreach for.", got)

	require.NoError(t, a.store.SetCompanyProfile(statex.CompanyProfile{
		ID: "co-1", Name: "Acme Parts", Industry: "Manufacturing", Size: "10-50", Location: "Austin, TX",
	}))
	require.NoError(t, a.store.AddCustomer(statex.CustomerProfile{
		ID: "c-open", CompanyID: "co-1", Name: "Ana Lima", Company: "Casa Bella", Industry: "Home Goods",
		Contact: statex.ContactInfo{Email: "ana@casabella.example"}, CompanySize: "100-500", Budget: "medium",
	}))
	require.NoError(t, a.store.AddCustomer(statex.CustomerProfile{
		ID: "c-closed", CompanyID: "co-1", Name: "Tom Reed", Company: "Done Deal Co.", Industry: "Automotive",
		Contact: statex.ContactInfo{Email: "tom@donedeal.example"}, Status: statex.StatusClosed,
	}))

	got, err = a.handleLine(ctx, "/outreach")
	require.NoError(t, err)
	assert.Contains(t, got, "**Casa Bella**")
	assert.Contains(t, got, "lead score 70, qualified")
	assert.NotContains(t, got, "Done Deal Co.")
	assert.Contains(t, got, "Stored 1 strategy reports.")

	reports := a.store.Strategies()
	require.Len(t, reports, 1)
	assert.Equal(t, []string{"c-open"}, reports[0].TargetCustomers)
}

func TestHandleLineSettingsAndChatFallback(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	got, err := a.handleLine(ctx, "/chat hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello! I am your AI business development assistant. How can I help you today?", got)

	_, err = a.handleLine(ctx, "/model gpt-4o-mini")
	require.NoError(t, err)
	v, ok, err := a.settings.Get(ctx, settings.KeyOpenAIModel)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", v)

	_, err = a.handleLine(ctx, "/model")
	require.NoError(t, err)
	_, ok, err = a.settings.Get(ctx, settings.KeyOpenAIModel)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHandleLineReports(t *testing.T) {
	a := newTestApp(t)

	morning, err := a.handleLine(context.Background(), "/morning")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(morning, "**Morning Business Report**"))
	assert.Contains(t, morning, "Conversion rate trend: Improving")

	_, err = a.handleLine(context.Background(), "/schedule")
	assert.Error(t, err, "scheduling requires delivery config")
}

func TestRunLoop(t *testing.T) {
	a := newTestApp(t)

	in := strings.NewReader("/help\ngenerate new leads\n/quit\n")
	var out bytes.Buffer
	require.NoError(t, a.run(context.Background(), in, &out))
	assert.Contains(t, out.String(), "Commands:")
	assert.Contains(t, out.String(), "John Smith")
}
