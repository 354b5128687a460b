package external

import (
	"testing"

	"ratehub/external/interfaces"
	"ratehub/internal/schema"
	env "ratehub/internal/secret"
)

func strPtr(s string) *string { return &s }

func testEnv() *env.Manager {
	m := &env.Manager{}
	m.RateEnvConfig = env.RateEnvConfig{
		TransporexToken: strPtr("t-token"),
		OceanlinkToken:  strPtr("o-token"),
		DraymateToken:   strPtr("d-token"),
	}
	return m
}

func TestConvertDateFormatNormalizesVendorTimestamps(t *testing.T) {
	date := "2024-07-10T08:30:00+02:00"
	got := ConvertDateFormat(&date, "2006-01-02T15:04:05Z07:00")
	if got != "2024-07-10" {
		t.Fatalf("expected 2024-07-10, got %q", got)
	}

	already := "2024-07-10"
	if got := ConvertDateFormat(&already, "2006-01-02T15:04:05Z07:00"); got != "2024-07-10" {
		t.Fatalf("date-only input should pass through, got %q", got)
	}

	garbage := "next tuesday"
	if got := ConvertDateFormat(&garbage, "2006-01-02T15:04:05Z07:00"); got != "" {
		t.Fatalf("unparsable input should yield empty string, got %q", got)
	}
}

func TestCalculateTransitDays(t *testing.T) {
	etd, eta := "2024-07-10", "2024-07-24"
	if got := CalculateTransitDays(&etd, &eta); got != 14 {
		t.Fatalf("expected 14 days, got %d", got)
	}
	if got := CalculateTransitDays(nil, &eta); got != 0 {
		t.Fatalf("missing etd should yield 0, got %d", got)
	}
}

func TestOceanlinkGenerateRates(t *testing.T) {
	payload := []byte(`{
		"requestRef": "req-1",
		"offers": [{
			"contractNo": "OL-2024-001",
			"carrierCode": "MSK",
			"portOfLoading": "CNSHA",
			"portOfDischarge": "USLAX",
			"transitPort": null,
			"routing": "DIRECT",
			"currency": "USD",
			"boxRates": [
				{"equipmentType": "20gp", "amount": "1500.00"},
				{"equipmentType": "40hc", "amount": "2950.00"},
				{"equipmentType": "53FT", "amount": "9999.00"}
			],
			"validFrom": "2024-07-01T00:00:00Z",
			"validTo": "2024-07-31T00:00:00Z",
			"etd": "2024-07-10T08:00:00Z",
			"eta": "2024-07-24T16:00:00Z",
			"transitTime": 0,
			"freeDetentionDays": 7,
			"freeStorageDays": 5
		}]
	}`)

	provider := &OceanlinkRateResponse{}
	rates, err := provider.GenerateRates(payload)
	if err != nil {
		t.Fatalf("GenerateRates: %v", err)
	}
	if len(rates) != 1 {
		t.Fatalf("expected 1 rate, got %d", len(rates))
	}
	rate := rates[0]
	if rate.TransitType != schema.Direct {
		t.Fatalf("DIRECT routing should map to direct, got %s", rate.TransitType)
	}
	if rate.Etd != "2024-07-10" || rate.Eta != "2024-07-24" {
		t.Fatalf("dates not normalized: etd=%s eta=%s", rate.Etd, rate.Eta)
	}
	if rate.TransitDays != 14 {
		t.Fatalf("transit days should be derived from etd/eta, got %d", rate.TransitDays)
	}
	if _, ok := rate.Prices.UnitPrice(schema.C20GP); !ok {
		t.Fatal("lowercase equipment type should be accepted")
	}
	if len(rate.Prices) != 2 {
		t.Fatalf("unknown equipment types must be dropped, got %d entries", len(rate.Prices))
	}
}

func TestTransporexSkipsQueriesWithoutPickup(t *testing.T) {
	provider := &TransporexRateResponse{}
	headerParams := provider.RateHeaderParams(&interfaces.RateArgs{
		Env:   testEnv(),
		Query: &schema.RateQueryParams{DeparturePort: "CNSHA"},
	})
	if headerParams.Headers != nil {
		t.Fatal("no pickup region means no vendor call")
	}
}

func TestDraymateDropsInactiveQuotes(t *testing.T) {
	payload := []byte(`{
		"deliveries": [
			{"deliveryId": "d-1", "certNo": "DM-1", "portCode": "USLAX", "agent": "Pacific Dray",
			 "currency": "USD", "boxRates": [{"equipmentType": "40HC", "amount": "250.00"}],
			 "validFrom": "2024-07-01", "validTo": "2024-12-31", "status": "ACTIVE", "transitDays": 3},
			{"deliveryId": "d-2", "certNo": "DM-2", "portCode": "USLAX", "agent": "Pacific Dray",
			 "currency": "USD", "boxRates": [], "validFrom": "2024-07-01", "validTo": "2024-12-31",
			 "status": "SUSPENDED", "transitDays": 3}
		]
	}`)

	provider := &DraymateRateResponse{}
	rates, err := provider.GenerateRates(payload)
	if err != nil {
		t.Fatalf("GenerateRates: %v", err)
	}
	if len(rates) != 1 || rates[0].ID != "d-1" {
		t.Fatalf("expected only the active quote, got %+v", rates)
	}
}
