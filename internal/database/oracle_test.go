package database

import (
	"testing"

	"ratehub/internal/schema"
)

func contractRate(certNo, boxPrice string) *schema.MainlineRate {
	prices := schema.PriceTable{}
	if boxPrice != "" {
		prices[schema.C20GP] = boxPrice
	}
	return &schema.MainlineRate{CertNo: certNo, Prices: prices}
}

func TestSortByBoxPriceComparesNumerically(t *testing.T) {
	rates := []*schema.MainlineRate{
		contractRate("M-1500", "1500.00"),
		contractRate("M-980", "980.00"),
		contractRate("M-10200", "USD 10,200.00"),
	}

	sortByBoxPrice(rates)

	want := []string{"M-980", "M-1500", "M-10200"}
	for i, certNo := range want {
		if rates[i].CertNo != certNo {
			t.Fatalf("position %d: expected %s, got %s", i, certNo, rates[i].CertNo)
		}
	}
}

func TestSortByBoxPricePutsUnpricedContractsLast(t *testing.T) {
	rates := []*schema.MainlineRate{
		contractRate("M-BLANK", ""),
		contractRate("M-TBD", "TBD"),
		contractRate("M-PRICED", "1500.00"),
	}

	sortByBoxPrice(rates)

	if rates[0].CertNo != "M-PRICED" {
		t.Fatalf("priced contract should sort first, got %s", rates[0].CertNo)
	}
	for _, rate := range rates[1:] {
		if rate.CertNo == "M-PRICED" {
			t.Fatal("unpriced contracts must not displace priced ones")
		}
	}
}
