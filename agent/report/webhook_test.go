package report

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	want     string
	lastDest string
}

func (f *fakeVerifier) Verify(signature string, _ []byte, destination string) error {
	f.lastDest = destination
	if signature != f.want {
		return errors.New("bad signature")
	}
	return nil
}

func newTestReporter(t *testing.T) *Reporter {
	t.Helper()
	r, err := NewReporter(&fixedMetrics{m: metricsFor(4, 1)}, fixedActivity{})
	require.NoError(t, err)
	return r
}

func TestWebhookGeneratesAndDelivers(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	deliverer, err := NewDeliverer(pub, "https://hooks.example.com/digest")
	require.NoError(t, err)
	verifier := &fakeVerifier{want: "good"}

	app := NewWebhookApp(newTestReporter(t), verifier, deliverer, WebhookConfig{PublicURL: "https://assistant.example.com/"})

	req := httptest.NewRequest(http.MethodPost, "/reports/morning", strings.NewReader(""))
	req.Header.Set("Upstash-Signature", "good")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Morning Business Report")
	assert.Equal(t, "https://assistant.example.com/reports/morning", verifier.lastDest)
	require.Len(t, pub.published, 1)
	assert.Equal(t, string(body), pub.published[0])
}

func TestWebhookRejects(t *testing.T) {
	t.Parallel()

	app := NewWebhookApp(newTestReporter(t), &fakeVerifier{want: "good"}, nil, WebhookConfig{})

	bad := httptest.NewRequest(http.MethodPost, "/reports/weekly", nil)
	bad.Header.Set("Upstash-Signature", "forged")
	resp, err := app.Test(bad)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	unknown := httptest.NewRequest(http.MethodPost, "/reports/monthly", nil)
	unknown.Header.Set("Upstash-Signature", "good")
	resp, err = app.Test(unknown)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebhookDeliveryFailure(t *testing.T) {
	t.Parallel()

	deliverer, err := NewDeliverer(&fakePublisher{err: errors.New("qstash down")}, "https://hooks.example.com")
	require.NoError(t, err)
	app := NewWebhookApp(newTestReporter(t), nil, deliverer, WebhookConfig{})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/reports/weekly", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
