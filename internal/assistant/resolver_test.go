package assistant

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"taxportal/internal/form"
	"taxportal/internal/platform/metrics"
	"taxportal/internal/screening"
)

// =============================================================================
// Resolver Test Suite
// =============================================================================

type ResolverSuite struct {
	suite.Suite
	metrics  *metrics.Metrics
	resolver *Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	var err error
	s.resolver, err = NewResolver(
		screening.DefaultRegistry(),
		form.DefaultRegistry(),
		FixedQuote("keep going"),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
}

func complete() form.Values {
	return form.Values{
		form.FullName:        "Sara Hassan",
		form.TaxID:           "123-456-789",
		form.TransactionType: "commercial",
		form.Amount:          "5000",
	}
}

func (s *ResolverSuite) TestNewResolver() {
	s.Run("nil fraud registry returns error", func() {
		_, err := NewResolver(nil, form.DefaultRegistry(), FixedQuote("q"))
		s.ErrorContains(err, "fraud registry is required")
	})

	s.Run("nil field registry returns error", func() {
		_, err := NewResolver(screening.DefaultRegistry(), nil, FixedQuote("q"))
		s.ErrorContains(err, "field registry is required")
	})

	s.Run("nil quote source returns error", func() {
		_, err := NewResolver(screening.DefaultRegistry(), form.DefaultRegistry(), nil)
		s.ErrorContains(err, "quote source is required")
	})
}

func (s *ResolverSuite) TestResolve() {
	s.Run("complete and clear is clean", func() {
		s.Equal(Clean(), s.resolver.Resolve(complete()))
	})

	s.Run("missing fields listed in registry order with quote", func() {
		values := complete()
		values[form.Amount] = ""
		values[form.FullName] = " "

		state := s.resolver.Resolve(values)
		s.Equal(KindIncomplete, state.Kind)
		s.Equal([]string{"Taxpayer full name", "Transaction amount (EGP)"}, state.Missing)
		s.Equal("keep going", state.Quote)
	})

	s.Run("flagged identifier on complete form", func() {
		values := complete()
		values[form.TaxID] = "999-999-999"
		s.Equal(Flagged(screening.ReasonMoneyLaundering), s.resolver.Resolve(values))
	})

	s.Run("flagged dominates incomplete", func() {
		values := form.Values{form.FullName: "Blacklisted Entity"}
		state := s.resolver.Resolve(values)
		s.Equal(KindFlagged, state.Kind)
		s.Equal(screening.ReasonMoneyLaundering, state.Reason)
		s.Empty(state.Missing)
		s.Empty(state.Quote)
	})

	s.Run("empty form is incomplete, never flagged", func() {
		state := s.resolver.Resolve(form.Values{})
		s.Equal(KindIncomplete, state.Kind)
		s.Len(state.Missing, 4)
	})
}

func (s *ResolverSuite) TestResolve_Metrics() {
	s.resolver.Resolve(complete())
	s.resolver.Resolve(form.Values{form.TaxID: "000-000-000"})

	s.Equal(1.0, testutil.ToFloat64(s.metrics.Resolutions.WithLabelValues("clean")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Resolutions.WithLabelValues("flagged")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ScreeningHits.WithLabelValues("repeated_tax_evasion")))
}

type countingQuotes struct {
	calls int
}

func (c *countingQuotes) Pick() string {
	c.calls++
	if c.calls%2 == 0 {
		return "even"
	}
	return "odd"
}

func (s *ResolverSuite) TestResolve_IdempotentClassification() {
	quotes := &countingQuotes{}
	resolver, err := NewResolver(screening.DefaultRegistry(), form.DefaultRegistry(), quotes)
	s.Require().NoError(err)

	values := form.Values{form.FullName: "Sara Hassan"}
	first := resolver.Resolve(values)
	second := resolver.Resolve(values)

	s.True(first.SameClassification(second))
	s.NotEqual(first.Quote, second.Quote, "quote is re-sampled, not cached")
	s.Equal(2, quotes.calls)
}

func (s *ResolverSuite) TestResolve_QuoteNotSampledWhenNotIncomplete() {
	quotes := &countingQuotes{}
	resolver, err := NewResolver(screening.DefaultRegistry(), form.DefaultRegistry(), quotes)
	s.Require().NoError(err)

	resolver.Resolve(complete())
	resolver.Resolve(form.Values{form.TaxID: "999-999-999"})
	s.Zero(quotes.calls)
}
