package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine matches a Prometheus sample by name, partial label pattern and value. The
// exporter injects OTel scope labels, hence the regex.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusFor(nil))
	assert.Equal(t, StatusError, StatusFor(errors.New("boom")))
}

func TestBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("wopihost_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "wopihost_test")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "wopi", "token_issue", StatusSuccess)
	bm.RecordOperation(ctx, "wopi", "token_issue", StatusSuccess)
	bm.RecordOperation(ctx, "wopi", "session_open_write", StatusError)
	bm.RecordOperation(ctx, "documents", "document_delete", StatusError)

	bm.RecordDuration(ctx, "wopi", "token_issue", 5*time.Millisecond, StatusSuccess)
	bm.RecordDuration(ctx, "wopi", "token_issue", 7*time.Millisecond, StatusSuccess)

	output := scrape(t, provider)

	assertMetricLine(t, output,
		`wopihost_test_operations_total`,
		`domain="wopi".*operation="token_issue".*status="success"`,
		`2`,
	)
	assertMetricLine(t, output,
		`wopihost_test_operations_total`,
		`domain="wopi".*operation="session_open_write".*status="error"`,
		`1`,
	)
	assertMetricLine(t, output,
		`wopihost_test_operations_total`,
		`domain="documents".*operation="document_delete".*status="error"`,
		`1`,
	)
	assertMetricLine(t, output,
		`wopihost_test_operation_duration_seconds_count`,
		`domain="wopi".*operation="token_issue".*status="success"`,
		`2`,
	)
}

func TestRegisterActiveTokensGauge(t *testing.T) {
	provider, err := NewProvider("wopihost_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	live := 3
	require.NoError(t, RegisterActiveTokensGauge(provider.MeterProvider(), "wopihost_test", func() int {
		return live
	}))

	assert.Regexp(t, `wopihost_test_active_access_tokens\{[^}]*\} 3`, scrape(t, provider))

	live = 1
	assert.Regexp(t, `wopihost_test_active_access_tokens\{[^}]*\} 1`, scrape(t, provider))
}

func TestNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()

	assert.NotPanics(t, func() {
		noOp.RecordOperation(context.Background(), "wopi", "lock_acquire", StatusSuccess)
		noOp.RecordDuration(context.Background(), "wopi", "lock_acquire", time.Millisecond, StatusSuccess)
	})
}
