package handlers

import (
	"testing"
	"time"

	"ratehub/internal/schema"
)

func mainlineRate(carrier string, transitType schema.TransitType, validFrom, validTo string) *schema.MainlineRate {
	return &schema.MainlineRate{
		CertNo:        "M001",
		DeparturePort: "CNSHA",
		DischargePort: "USLAX",
		Carrier:       carrier,
		TransitType:   transitType,
		ValidFrom:     validFrom,
		ValidTo:       validTo,
	}
}

func TestWithCarrierIsCaseInsensitive(t *testing.T) {
	rate := mainlineRate("MSK", schema.Direct, "2024-07-01", "2024-07-31")
	filter := WithCarrier()
	if !filter(rate, &schema.RateQueryParams{Carrier: "msk"}) {
		t.Fatal("carrier match should ignore case")
	}
	if filter(rate, &schema.RateQueryParams{Carrier: "ONE"}) {
		t.Fatal("different carrier must be filtered out")
	}
	if !filter(rate, &schema.RateQueryParams{}) {
		t.Fatal("empty criterion must pass everything")
	}
}

func TestWithTransitTypeOnlyAppliesWhenRequested(t *testing.T) {
	direct := mainlineRate("MSK", schema.Direct, "2024-07-01", "2024-07-31")
	transit := mainlineRate("MSK", schema.Transit, "2024-07-01", "2024-07-31")
	filter := WithTransitType()
	query := &schema.RateQueryParams{TransitType: schema.Direct}
	if !filter(direct, query) || filter(transit, query) {
		t.Fatal("direct-only query should keep direct rates only")
	}
	if !filter(transit, &schema.RateQueryParams{}) {
		t.Fatal("unspecified transit type must pass everything")
	}
}

func TestWithinValidityUsesStartDateOrToday(t *testing.T) {
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	rate := mainlineRate("MSK", schema.Direct, "2024-07-01", "2024-07-31")
	expired := mainlineRate("MSK", schema.Direct, "2024-05-01", "2024-05-31")
	filter := WithinValidity(now)

	if !filter(rate, &schema.RateQueryParams{}) {
		t.Fatal("rate covering today should pass")
	}
	if filter(expired, &schema.RateQueryParams{}) {
		t.Fatal("expired rate should be dropped")
	}
	if filter(rate, &schema.RateQueryParams{StartDate: "2024-08-15"}) {
		t.Fatal("explicit start date outside the window should drop the rate")
	}
	if !filter(expired, &schema.RateQueryParams{StartDate: "2024-05-10"}) {
		t.Fatal("explicit start date inside the window should keep the rate")
	}
}

func TestMainlineFiltersCompose(t *testing.T) {
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	composite := MainlineFilters(WithCarrier(), WithTransitType(), WithinValidity(now))
	rate := mainlineRate("MSK", schema.Direct, "2024-07-01", "2024-07-31")
	query := &schema.RateQueryParams{Carrier: "MSK", TransitType: schema.Direct}
	if !composite(rate, query) {
		t.Fatal("rate matching every criterion should pass the composite")
	}
	query.Carrier = "ONE"
	if composite(rate, query) {
		t.Fatal("one failing criterion should fail the composite")
	}
}
