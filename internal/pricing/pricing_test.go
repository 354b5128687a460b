package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"ratehub/internal/schema"
)

func mustTable(t *testing.T, prices map[string]string) schema.PriceTable {
	t.Helper()
	table, err := schema.NewPriceTable(prices)
	if err != nil {
		t.Fatalf("NewPriceTable: %v", err)
	}
	return table
}

func wantDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func mainlineFixture(t *testing.T) *schema.MainlineRate {
	t.Helper()
	return &schema.MainlineRate{
		CertNo:        "M001",
		DeparturePort: "CNSHA",
		DischargePort: "USLAX",
		Carrier:       "MSC",
		TransitType:   schema.Direct,
		Currency:      "USD",
		Prices:        mustTable(t, map[string]string{"20GP": "1500.00", "40GP": "2800.00"}),
		FlatPrice:     "1200",
		ValidFrom:     "2024-06-01",
		ValidTo:       "2024-07-01",
		Etd:           "2024-07-10",
		Eta:           "2024-07-24",
		TransitDays:   14,
	}
}

func TestPriceLeg_FCL(t *testing.T) {
	selections := []schema.ContainerSelection{
		{Type: schema.C20GP, Count: 2},
		{Type: schema.C40GP, Count: 1},
	}
	result, err := PriceLeg(mainlineFixture(t), schema.Mainline, selections, schema.FCL)
	if err != nil {
		t.Fatalf("PriceLeg: %v", err)
	}
	if len(result.LineItems) != 2 {
		t.Fatalf("line items = %d, want 2", len(result.LineItems))
	}
	wantDecimal(t, "20GP line total", result.LineItems[0].LineTotal, "3000.00")
	wantDecimal(t, "40GP line total", result.LineItems[1].LineTotal, "2800.00")
	wantDecimal(t, "subtotal", result.Subtotal, "5800.00")
	if result.Currency != "USD" {
		t.Errorf("currency = %s, want USD", result.Currency)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", result.Warnings)
	}
}

func TestPriceLeg_AllCountsZero(t *testing.T) {
	selections := []schema.ContainerSelection{
		{Type: schema.C20GP, Count: 0},
		{Type: schema.C40HC, Count: 0},
	}
	result, err := PriceLeg(mainlineFixture(t), schema.Mainline, selections, schema.FCL)
	if err != nil {
		t.Fatalf("PriceLeg: %v", err)
	}
	if len(result.LineItems) != 0 {
		t.Errorf("line items = %d, want 0", len(result.LineItems))
	}
	if !result.Subtotal.IsZero() {
		t.Errorf("subtotal = %s, want 0", result.Subtotal)
	}
}

func TestPriceLeg_MissingTypePricedZeroWithWarning(t *testing.T) {
	selections := []schema.ContainerSelection{{Type: schema.C45HC, Count: 3}}
	result, err := PriceLeg(mainlineFixture(t), schema.Mainline, selections, schema.FCL)
	if err != nil {
		t.Fatalf("PriceLeg: %v", err)
	}
	if !result.Subtotal.IsZero() {
		t.Errorf("subtotal = %s, want 0", result.Subtotal)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(result.Warnings))
	}
	if result.Warnings[0].ContainerType != schema.C45HC {
		t.Errorf("warning type = %s, want 45HC", result.Warnings[0].ContainerType)
	}
	if !result.LineItems[0].Defaulted {
		t.Error("line item not flagged as defaulted")
	}
}

func TestPriceLeg_FlatPriceForLCL(t *testing.T) {
	selections := []schema.ContainerSelection{
		{Type: schema.C20GP, Count: 1},
		{Type: schema.C40GP, Count: 2},
	}
	result, err := PriceLeg(mainlineFixture(t), schema.Mainline, selections, schema.LCL)
	if err != nil {
		t.Fatalf("PriceLeg: %v", err)
	}
	// flat 1200 regardless of type
	wantDecimal(t, "unit price", result.LineItems[0].UnitPrice, "1200")
	wantDecimal(t, "subtotal", result.Subtotal, "3600")
}

func TestPriceLeg_NilRate(t *testing.T) {
	if _, err := PriceLeg(nil, schema.Mainline, nil, schema.FCL); err != ErrNilRate {
		t.Fatalf("err = %v, want ErrNilRate", err)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw    string
		want   string
		parsed bool
	}{
		{"1500.00", "1500.00", true},
		{"USD 1,500.00", "1500.00", true},
		{"¥800.00", "800.00", true},
		{"0", "0", true},
		{"", "0", false},
		{"TBD", "0", false},
		{"1.2.3", "0", false},
	}
	for _, tc := range cases {
		got, parsed := ParsePrice(tc.raw)
		if parsed != tc.parsed {
			t.Errorf("ParsePrice(%q) parsed = %v, want %v", tc.raw, parsed, tc.parsed)
		}
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("ParsePrice(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestPriceLeg_ExactDecimalArithmetic(t *testing.T) {
	rate := mainlineFixture(t)
	rate.Prices = mustTable(t, map[string]string{"20GP": "0.10"})
	result, err := PriceLeg(rate, schema.Mainline,
		[]schema.ContainerSelection{{Type: schema.C20GP, Count: 3}}, schema.FCL)
	if err != nil {
		t.Fatalf("PriceLeg: %v", err)
	}
	// 0.1×3 must be exactly 0.3, no float drift
	wantDecimal(t, "subtotal", result.Subtotal, "0.3")
}
