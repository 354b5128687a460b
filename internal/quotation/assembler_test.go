package quotation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"ratehub/internal/pricing"
	"ratehub/internal/schema"
)

func pricedLegs(t *testing.T) (Legs, []schema.ContainerSelection) {
	t.Helper()
	selections := []schema.ContainerSelection{
		{Type: schema.C20GP, Count: 2},
		{Type: schema.C40GP, Count: 1},
	}
	mainline := &schema.MainlineRate{
		CertNo:   "M001",
		Carrier:  "MSC",
		Currency: "USD",
		Prices:   schema.PriceTable{schema.C20GP: "1500.00", schema.C40GP: "2800.00"},
	}
	precarriage := &schema.PrecarriageRate{
		CertNo:   "P001",
		Vendor:   "Deppon Line",
		Currency: "CNY",
		Prices:   schema.PriceTable{schema.C20GP: "800.00", schema.C40GP: "1200.00"},
	}

	mainlineResult, err := pricing.PriceLeg(mainline, schema.Mainline, selections, schema.FCL)
	if err != nil {
		t.Fatalf("price mainline: %v", err)
	}
	precarriageResult, err := pricing.PriceLeg(precarriage, schema.Precarriage, selections, schema.FCL)
	if err != nil {
		t.Fatalf("price precarriage: %v", err)
	}
	return Legs{
		Mainline:    &LegQuote{Party: "MSC", RouteFrom: "CNSHA", RouteTo: "USLAX", Result: mainlineResult},
		Precarriage: &LegQuote{Party: "Deppon Line", RouteFrom: "Suzhou", RouteTo: "Yangshan", Result: precarriageResult},
	}, selections
}

var frozenNow = time.Date(2024, 7, 1, 10, 30, 0, 0, time.UTC)

func TestAssemble_IncludesOnlyEnabledLegs(t *testing.T) {
	legs, selections := pricedLegs(t)
	flags := schema.ServiceFlags{Mainline: true, Precarriage: false}
	doc, err := Assemble(legs, flags, selections, Meta{CargoMode: schema.FCL}, frozenNow)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(doc.Sections))
	}
	if doc.Sections[0].Kind != schema.Mainline {
		t.Errorf("section kind = %s, want mainline", doc.Sections[0].Kind)
	}
}

func TestAssemble_MissingEnabledLegAborts(t *testing.T) {
	legs, selections := pricedLegs(t)
	legs.Mainline = nil
	flags := schema.ServiceFlags{Mainline: true, Precarriage: true}
	doc, err := Assemble(legs, flags, selections, Meta{CargoMode: schema.FCL}, frozenNow)
	if doc != nil {
		t.Fatal("expected no partial document")
	}
	var missing *MissingSelectionError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingSelectionError", err)
	}
	if missing.Leg != schema.Mainline {
		t.Errorf("missing leg = %s, want mainline", missing.Leg)
	}
}

func TestAssemble_IdempotentForFrozenTimestamp(t *testing.T) {
	legs, selections := pricedLegs(t)
	flags := schema.ServiceFlags{Mainline: true, Precarriage: true}
	meta := Meta{CargoMode: schema.FCL, Origin: "Suzhou", Destination: "San Diego, CA"}

	first, err := Assemble(legs, flags, selections, meta, frozenNow)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	second, err := Assemble(legs, flags, selections, meta, frozenNow)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if RenderText(first) != RenderText(second) {
		t.Error("text renderings differ for identical inputs")
	}
}

func TestRenderings_AgreeOnTotals(t *testing.T) {
	legs, selections := pricedLegs(t)
	flags := schema.ServiceFlags{Mainline: true, Precarriage: true}
	doc, err := Assemble(legs, flags, selections, Meta{CargoMode: schema.FCL}, frozenNow)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	text := RenderText(doc)
	table := RenderTable(doc)

	if len(table.Rows) != 2 {
		t.Fatalf("table rows = %d, want 2", len(table.Rows))
	}
	for _, row := range table.Rows {
		if !strings.Contains(text, row.Currency+" "+row.Subtotal) {
			t.Errorf("text rendering missing %s subtotal %s %s", row.Leg, row.Currency, row.Subtotal)
		}
	}
	if !strings.Contains(text, "USD 5800.00") {
		t.Errorf("text missing mainline subtotal, got:\n%s", text)
	}
	if !strings.Contains(text, "CNY 2800.00") {
		t.Errorf("text missing precarriage subtotal, got:\n%s", text)
	}
}

func TestRenderText_FixedFooter(t *testing.T) {
	legs, selections := pricedLegs(t)
	doc, err := Assemble(legs, schema.ServiceFlags{Mainline: true}, selections, Meta{CargoMode: schema.FCL}, frozenNow)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	text := RenderText(doc)
	if !strings.Contains(text, "Validity: 7 days") {
		t.Error("text missing fixed validity window")
	}
	if !strings.Contains(text, Disclaimer) {
		t.Error("text missing disclaimer")
	}
}

func TestRenderText_PartyNamesVerbatim(t *testing.T) {
	legs, selections := pricedLegs(t)
	doc, err := Assemble(legs, schema.ServiceFlags{Mainline: true}, selections, Meta{CargoMode: schema.FCL}, frozenNow)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	text := RenderText(doc)
	if !strings.Contains(text, "MSC") {
		t.Errorf("carrier name missing from text, got:\n%s", text)
	}
	if strings.Contains(text, "Msc") {
		t.Errorf("all-caps carrier name was recased, got:\n%s", text)
	}
}

func TestRenderTable_StableColumns(t *testing.T) {
	legs, selections := pricedLegs(t)
	doc, err := Assemble(legs, schema.ServiceFlags{Mainline: true, Precarriage: true}, selections, Meta{CargoMode: schema.FCL}, frozenNow)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	table := RenderTable(doc)
	want := []schema.ContainerType{schema.C20GP, schema.C40GP}
	if len(table.Columns) != len(want) {
		t.Fatalf("columns = %v, want %v", table.Columns, want)
	}
	for i, col := range want {
		if table.Columns[i] != col {
			t.Errorf("column %d = %s, want %s", i, table.Columns[i], col)
		}
	}
}
