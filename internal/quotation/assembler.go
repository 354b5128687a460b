package quotation

import (
	"fmt"
	"time"

	"ratehub/internal/pricing"
	"ratehub/internal/schema"
)

const (
	// ValidityDays is the fixed offer window printed on every document.
	ValidityDays = 7
	// Disclaimer is the fixed footer line.
	Disclaimer = "This quotation is for reference only; the final price is subject to actual confirmation."
)

// MissingSelectionError reports a leg that is flagged for service but has no
// priced rate behind it. The assembler produces nothing in that case.
type MissingSelectionError struct {
	Leg schema.LegKind
}

func (e *MissingSelectionError) Error() string {
	return fmt.Sprintf("no %s rate selected", e.Leg)
}

// Meta is the shipment header information printed on the document.
type Meta struct {
	CargoMode   schema.CargoMode `json:"cargoType"`
	Origin      string           `json:"origin"`
	Destination string           `json:"destination"`
	Weight      string           `json:"weight,omitempty"`
	Volume      string           `json:"volume,omitempty"`
}

// LegQuote pairs a priced leg result with the descriptive fields the
// document prints next to it.
type LegQuote struct {
	Party     string            `json:"party"`
	RouteFrom string            `json:"routeFrom"`
	RouteTo   string            `json:"routeTo"`
	Remark    string            `json:"remark,omitempty"`
	Result    pricing.LegResult `json:"result"`
}

// Legs holds the selected, already-priced legs offered to the assembler.
// A nil entry means no rate was selected for that leg.
type Legs struct {
	Precarriage *LegQuote
	Mainline    *LegQuote
	Oncarriage  *LegQuote
}

// Section is one included leg of the final document.
type Section struct {
	Kind      schema.LegKind    `json:"leg"`
	Title     string            `json:"title"`
	Party     string            `json:"party"`
	RouteFrom string            `json:"routeFrom"`
	RouteTo   string            `json:"routeTo"`
	Remark    string            `json:"remark,omitempty"`
	Result    pricing.LegResult `json:"result"`
}

// Document is the assembled quotation. Both renderings read the computed
// sections; nothing is repriced at render time, so text and table always
// agree.
type Document struct {
	Meta        Meta                        `json:"meta"`
	Selections  []schema.ContainerSelection `json:"containers"`
	GeneratedAt time.Time                   `json:"generatedAt"`
	ValidDays   int                         `json:"validDays"`
	Disclaimer  string                      `json:"disclaimer"`
	Sections    []Section                   `json:"sections"`
}

var sectionTitles = map[schema.LegKind]string{
	schema.Precarriage: "Precarriage freight",
	schema.Mainline:    "Mainline freight",
	schema.Oncarriage:  "Oncarriage freight",
}

var sectionParties = map[schema.LegKind]string{
	schema.Precarriage: "Vendor",
	schema.Mainline:    "Carrier",
	schema.Oncarriage:  "Agent",
}

// Assemble builds a quotation document from the enabled, priced legs.
// Only legs whose service flag is on AND that carry a priced result are
// included; an enabled leg with no quote aborts the whole assembly. The
// timestamp is injected so repeated calls with identical inputs yield
// identical documents.
func Assemble(legs Legs, flags schema.ServiceFlags, selections []schema.ContainerSelection, meta Meta, now time.Time) (*Document, error) {
	ordered := []struct {
		kind  schema.LegKind
		on    bool
		quote *LegQuote
	}{
		{schema.Precarriage, flags.Precarriage, legs.Precarriage},
		{schema.Mainline, flags.Mainline, legs.Mainline},
		{schema.Oncarriage, flags.Oncarriage, legs.Oncarriage},
	}

	doc := &Document{
		Meta:        meta,
		Selections:  positiveSelections(selections),
		GeneratedAt: now,
		ValidDays:   ValidityDays,
		Disclaimer:  Disclaimer,
	}
	for _, leg := range ordered {
		if !leg.on {
			continue
		}
		if leg.quote == nil {
			return nil, &MissingSelectionError{Leg: leg.kind}
		}
		doc.Sections = append(doc.Sections, Section{
			Kind:      leg.kind,
			Title:     sectionTitles[leg.kind],
			Party:     leg.quote.Party,
			RouteFrom: leg.quote.RouteFrom,
			RouteTo:   leg.quote.RouteTo,
			Remark:    leg.quote.Remark,
			Result:    leg.quote.Result,
		})
	}
	return doc, nil
}

func positiveSelections(selections []schema.ContainerSelection) []schema.ContainerSelection {
	kept := make([]schema.ContainerSelection, 0, len(selections))
	for _, sel := range selections {
		if sel.Count > 0 {
			kept = append(kept, sel)
		}
	}
	return kept
}
