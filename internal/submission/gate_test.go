package submission

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxportal/internal/form"
	"taxportal/internal/platform/metrics"
	"taxportal/internal/screening"
	id "taxportal/pkg/domain"
	"taxportal/pkg/platform/audit"
	"taxportal/pkg/platform/audit/publisher"
	"taxportal/pkg/platform/audit/store/memory"
)

func values(name, taxID string) form.Values {
	return form.Values{
		form.FullName:        name,
		form.TaxID:           taxID,
		form.TransactionType: "commercial",
		form.Amount:          "5000",
	}
}

func TestEvaluate(t *testing.T) {
	reg := screening.DefaultRegistry()

	tests := []struct {
		name       string
		values     form.Values
		want       Outcome
		wantReason screening.ReasonCode
	}{
		{"valid and clean is accepted", values("Sara Hassan", "123-456-789"), OutcomeAccepted, ""},
		{"surrounding spaces are trimmed", values("Sara Hassan", " 123-456-789 "), OutcomeAccepted, ""},
		{"wrong digit grouping", values("Sara Hassan", "12-34-56"), OutcomeRejectedFormat, ""},
		{"format checked before fraud", values("Blacklisted Entity", "12-34-56"), OutcomeRejectedFormat, ""},
		{"empty tax id", values("Sara Hassan", ""), OutcomeRejectedFormat, ""},
		{"registered identifier", values("Sara Hassan", "999-999-999"), OutcomeRejectedFraud, screening.ReasonMoneyLaundering},
		{"registered name with valid id", values("علي بابا", "123-456-789"), OutcomeRejectedFraud, screening.ReasonRepeatedTaxEvasion},
		{"empty name never matches", values("", "123-456-789"), OutcomeAccepted, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Evaluate(reg, tt.values)
			assert.Equal(t, tt.want, decision.Outcome)
			assert.Equal(t, tt.wantReason, decision.Reason)
			assert.Equal(t, tt.want == OutcomeAccepted, decision.Accepted())
		})
	}
}

func TestDecision_Notice(t *testing.T) {
	assert.Contains(t, Decision{Outcome: OutcomeRejectedFormat}.Notice(), "000-000-000")
	assert.Contains(t, Decision{Outcome: OutcomeRejectedFraud}.Notice(), "security restrictions")
	assert.Contains(t, Decision{Outcome: OutcomeAccepted}.Notice(), "successfully")
}

func TestGate_Submit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInMemoryStore()
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	pub := publisher.NewPublisher(store)
	defer pub.Close()
	gate := NewGate(screening.DefaultRegistry(), WithAuditor(pub), WithMetrics(m))
	sessionID := id.NewSessionID()

	decision := gate.Submit(ctx, sessionID, values("Sara Hassan", "999-999-999"))
	require.Equal(t, OutcomeRejectedFraud, decision.Outcome)

	decision = gate.Submit(ctx, sessionID, values("Sara Hassan", "123-456-789"))
	require.Equal(t, OutcomeAccepted, decision.Outcome)

	events, err := store.ListBySession(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, string(audit.EventSubmissionRejected), events[0].Action)
	assert.Equal(t, audit.CategorySecurity, events[0].Category)
	assert.Equal(t, string(screening.ReasonMoneyLaundering), events[0].Reason)
	assert.Equal(t, audit.HashSubjectID("999-999-999"), events[0].SubjectIDHash)

	assert.Equal(t, string(audit.EventSubmissionAccepted), events[1].Action)
	assert.Equal(t, audit.CategoryCompliance, events[1].Category)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("rejected_fraud")))
}

type failingEmitter struct{}

func (failingEmitter) Emit(context.Context, audit.Event) error { return errors.New("sink down") }

func TestGate_AuditFailureDoesNotChangeDecision(t *testing.T) {
	gate := NewGate(screening.DefaultRegistry(), WithAuditor(failingEmitter{}))
	decision := gate.Submit(context.Background(), id.NewSessionID(), values("Sara Hassan", "123-456-789"))
	assert.True(t, decision.Accepted())
}
