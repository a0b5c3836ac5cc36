package billing

import (
	"testing"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanForStatus(t *testing.T) {
	cases := []struct {
		status     string
		wantPlan   string
		wantStatus string
	}{
		{"active", models.PlanPro, models.SubActive},
		{"trialing", models.PlanPro, models.SubTrialing},
		{"past_due", models.PlanPro, models.SubPastDue},
		{"canceled", models.PlanFree, models.SubCanceled},
		{"unpaid", models.PlanFree, models.SubInactive},
		{"incomplete", models.PlanFree, models.SubInactive},
		{"incomplete_expired", models.PlanFree, models.SubInactive},
		{"", models.PlanFree, models.SubUnknown},
		{"paused", models.PlanFree, "paused"},
	}
	for _, c := range cases {
		plan, status := PlanForStatus(c.status)
		assert.Equal(t, c.wantPlan, plan, "status %q", c.status)
		assert.Equal(t, c.wantStatus, status, "status %q", c.status)
	}
}

func TestPeriodEnd(t *testing.T) {
	assert.Nil(t, PeriodEnd(nil))
	assert.Nil(t, PeriodEnd(&stripe.Subscription{}))

	ts := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	sub := &stripe.Subscription{
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{
				{CurrentPeriodEnd: ts.Unix()},
			},
		},
	}
	got := PeriodEnd(sub)
	require.NotNil(t, got)
	assert.Equal(t, ts, *got)
}
