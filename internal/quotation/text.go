package quotation

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

var cargoModeLabels = map[string]string{
	"fcl": "FCL",
	"lcl": "LCL",
	"air": "Air freight",
}

// RenderText flattens the document into the copyable quotation block. Line
// totals come straight from the computed line items.
func RenderText(doc *Document) string {
	var b strings.Builder
	b.WriteString("=== Freight Rate Quotation ===\n\n")

	b.WriteString("Basic information:\n")
	fmt.Fprintf(&b, "Cargo type: %s\n", cargoModeLabels[string(doc.Meta.CargoMode)])
	fmt.Fprintf(&b, "Origin: %s\n", orDash(doc.Meta.Origin))
	fmt.Fprintf(&b, "Destination: %s\n", orDash(doc.Meta.Destination))
	if doc.Meta.Weight != "" {
		fmt.Fprintf(&b, "Weight: %s KGS\n", doc.Meta.Weight)
	}
	if doc.Meta.Volume != "" {
		fmt.Fprintf(&b, "Volume: %s CBM\n", doc.Meta.Volume)
	}
	b.WriteString("\n")

	b.WriteString("Containers:\n")
	for _, sel := range doc.Selections {
		fmt.Fprintf(&b, "%s: %d\n", sel.Type, sel.Count)
	}
	b.WriteString("\n")

	for _, section := range doc.Sections {
		fmt.Fprintf(&b, "%s detail:\n", section.Title)
		// Party names print verbatim; "MSC" must not become "Msc".
		fmt.Fprintf(&b, "%s: %s\n", sectionParties[section.Kind], section.Party)
		fmt.Fprintf(&b, "Route: %s - %s\n", section.RouteFrom, section.RouteTo)
		b.WriteString("Charges:\n")
		for _, item := range section.Result.LineItems {
			fmt.Fprintf(&b, "  %s × %d: %s %s × %d = %s %s\n",
				item.ContainerType, item.Quantity,
				item.Currency, item.UnitPrice.StringFixed(2), item.Quantity,
				item.Currency, item.LineTotal.StringFixed(2))
		}
		fmt.Fprintf(&b, "%s subtotal: %s %s\n",
			titleCaser.String(string(section.Kind)), section.Result.Currency, section.Result.Subtotal.StringFixed(2))
		if section.Remark != "" {
			fmt.Fprintf(&b, "Remark: %s\n", section.Remark)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Quoted at: %s\n", doc.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Validity: %d days\n", doc.ValidDays)
	fmt.Fprintf(&b, "Remark: %s", doc.Disclaimer)
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
