package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ---------------------------------------------------------
// Slugify
// ---------------------------------------------------------

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"London Ohio Lions":     "london-ohio-lions",
		"  Trim Me  ":           "trim-me",
		"Weird--_--Chars!!":     "weird-chars",
		"already-a-slug":        "already-a-slug",
		"MIXED Case 42":         "mixed-case-42",
		"---leading-trailing--": "leading-trailing",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

// ---------------------------------------------------------
// Bootstrap endpoint
// ---------------------------------------------------------

func bootstrapRequest(t *testing.T, cfg *config.Config, url string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewBootstrapHandler(nil, cfg)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, url, nil)
	require.NoError(t, err)
	c.Request = req
	h.Bootstrap(c)
	return w
}

func TestBootstrapHiddenWhenUnconfigured(t *testing.T) {
	w := bootstrapRequest(t, &config.Config{}, "/admin/bootstrap?key=whatever")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBootstrapHiddenWhenPartiallyConfigured(t *testing.T) {
	cfg := &config.Config{
		BootstrapKey:      "k",
		BootstrapClubCode: "london-ohio",
		// email and password missing
	}
	w := bootstrapRequest(t, cfg, "/admin/bootstrap?key=k")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBootstrapRejectsWrongKey(t *testing.T) {
	cfg := &config.Config{
		BootstrapKey:      "correct-key",
		BootstrapClubCode: "london-ohio",
		BootstrapClubName: "London Ohio Lions Club",
		BootstrapEmail:    "owner@example.org",
		BootstrapPassword: "changeme-now",
	}
	w := bootstrapRequest(t, cfg, "/admin/bootstrap?key=wrong-key")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_bootstrap_key")
}

// ---------------------------------------------------------
// Billing
// ---------------------------------------------------------

func TestBillingMeUnavailableWhenDisabled(t *testing.T) {
	h := NewBillingHandler(nil, &config.Config{BillingEnabled: false}, nil, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/billing/me", nil)
	require.NoError(t, err)
	c.Request = req

	h.Me(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "billing_disabled")
}

func TestWebhookObjectPeriodEnd(t *testing.T) {
	var obj webhookObject
	assert.Nil(t, obj.periodEnd())

	obj.CurrentPeriodEnd = 1767225600 // 2026-01-01T00:00:00Z
	got := obj.periodEnd()
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), got.UTC())

	// New-style payloads carry the timestamp on the line item instead.
	itemOnly := webhookObject{}
	itemOnly.Items.Data = []struct {
		CurrentPeriodEnd int64 `json:"current_period_end"`
	}{{CurrentPeriodEnd: 1767225600}}
	got = itemOnly.periodEnd()
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), got.UTC())
}
