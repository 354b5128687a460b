package combination

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"ratehub/internal/schema"
)

var testSelections = []schema.ContainerSelection{{Type: schema.C20GP, Count: 1}}

func mainlineRates() []*schema.MainlineRate {
	return []*schema.MainlineRate{
		{
			CertNo: "M001", Carrier: "MSC", Currency: "USD",
			Prices:      schema.PriceTable{schema.C20GP: "1500.00"},
			Etd:         "2024-07-10", Eta: "2024-07-24", TransitDays: 14,
		},
		{
			CertNo: "M002", Carrier: "Maersk", Currency: "USD",
			Prices:      schema.PriceTable{schema.C20GP: "1450.00"},
			Etd:         "2024-08-08", Eta: "2024-08-24", TransitDays: 16,
		},
	}
}

func precarriageRates() []*schema.PrecarriageRate {
	return []*schema.PrecarriageRate{
		{CertNo: "P001", Vendor: "Deppon", Currency: "USD",
			Prices: schema.PriceTable{schema.C20GP: "800.00"}, TransitDays: 1},
		{CertNo: "P002", Vendor: "Feeder 65", Currency: "USD",
			Prices: schema.PriceTable{schema.C20GP: "400.00"}, TransitDays: 2},
	}
}

func oncarriageRates() []*schema.OncarriageRate {
	return []*schema.OncarriageRate{
		{CertNo: "O001", Agent: "XPO TRUCK LLC", Currency: "USD",
			Prices: schema.PriceTable{schema.C20GP: "250.00"}, TransitDays: 3},
	}
}

func TestEnumerate_CartesianProduct(t *testing.T) {
	enum := NewEnumerator(testSelections, schema.FCL)
	flags := schema.ServiceFlags{Precarriage: true, Mainline: true, Oncarriage: true}
	combos, err := enum.Enumerate(Candidates{
		Precarriage: precarriageRates(),
		Mainline:    mainlineRates(),
		Oncarriage:  oncarriageRates(),
	}, flags)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(combos) != 4 {
		t.Fatalf("candidates = %d, want 2×2×1 = 4", len(combos))
	}
	first := combos[0]
	// P001 800 + M001 1500 + O001 250
	if !first.TotalPrice.Equal(decimal.RequireFromString("2550.00")) {
		t.Errorf("total = %s, want 2550.00", first.TotalPrice)
	}
	if first.TransitDays != 18 {
		t.Errorf("transit = %d, want 1+14+3 = 18", first.TransitDays)
	}
	if first.Etd != "2024-07-10" {
		t.Errorf("etd = %s, want mainline etd", first.Etd)
	}
	if first.Eta != "2024-07-27" {
		t.Errorf("eta = %s, want mainline eta shifted by oncarriage days", first.Eta)
	}
}

func TestEnumerate_DisabledLegKeepsPlaceholder(t *testing.T) {
	enum := NewEnumerator(testSelections, schema.FCL)
	flags := schema.ServiceFlags{Mainline: true}
	combos, err := enum.Enumerate(Candidates{Mainline: mainlineRates()}, flags)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(combos) != 2 {
		t.Fatalf("candidates = %d, want 2", len(combos))
	}
	for _, combo := range combos {
		if combo.PrecarriageRef != Placeholder || combo.OncarriageRef != Placeholder {
			t.Errorf("disabled legs should be placeholders, got %q / %q",
				combo.PrecarriageRef, combo.OncarriageRef)
		}
	}
}

func TestEnumerate_EmptyEnabledLegAborts(t *testing.T) {
	enum := NewEnumerator(testSelections, schema.FCL)
	flags := schema.ServiceFlags{Precarriage: true, Mainline: true}
	combos, err := enum.Enumerate(Candidates{Mainline: mainlineRates()}, flags)
	if combos != nil {
		t.Fatal("expected no candidate list")
	}
	var noCandidates *NoCandidatesError
	if !errors.As(err, &noCandidates) {
		t.Fatalf("err = %v, want NoCandidatesError", err)
	}
	if noCandidates.Leg != schema.Precarriage {
		t.Errorf("leg = %s, want precarriage", noCandidates.Leg)
	}
}

func TestEnumerate_MixedCurrencyFlagged(t *testing.T) {
	enum := NewEnumerator(testSelections, schema.FCL)
	pre := precarriageRates()
	pre[0].Currency = "CNY"
	flags := schema.ServiceFlags{Precarriage: true, Mainline: true}
	combos, err := enum.Enumerate(Candidates{
		Precarriage: pre[:1],
		Mainline:    mainlineRates()[:1],
	}, flags)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if !combos[0].MixedCurrency {
		t.Error("mixed-currency candidate not flagged")
	}
}

func TestSortByTotalPrice_StableAscending(t *testing.T) {
	candidates := []Candidate{
		{Key: "combo-1", TotalPrice: decimal.RequireFromString("3560.00"), TransitDays: 32},
		{Key: "combo-2", TotalPrice: decimal.RequireFromString("3420.00"), TransitDays: 35},
		{Key: "combo-3", TotalPrice: decimal.RequireFromString("3420.00"), TransitDays: 30},
	}
	SortByTotalPrice(candidates)
	wantOrder := []string{"combo-2", "combo-3", "combo-1"}
	for i, want := range wantOrder {
		if candidates[i].Key != want {
			t.Errorf("position %d = %s, want %s", i, candidates[i].Key, want)
		}
	}
}

func TestSortByTransitTime_Ascending(t *testing.T) {
	candidates := []Candidate{
		{Key: "combo-1", TransitDays: 32},
		{Key: "combo-2", TransitDays: 35},
		{Key: "combo-3", TransitDays: 30},
	}
	SortByTransitTime(candidates)
	if candidates[0].Key != "combo-3" || candidates[2].Key != "combo-2" {
		t.Errorf("order = %s,%s,%s, want combo-3,combo-1,combo-2",
			candidates[0].Key, candidates[1].Key, candidates[2].Key)
	}
}
