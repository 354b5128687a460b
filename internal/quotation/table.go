package quotation

import (
	"ratehub/internal/schema"
)

// TableCell is one container-type column in a leg row.
type TableCell struct {
	ContainerType schema.ContainerType `json:"containerType"`
	Quantity      int                  `json:"quantity"`
	UnitPrice     string               `json:"unitPrice"`
	LineTotal     string               `json:"lineTotal"`
}

// TableRow is one leg of the table rendering, subtotal included.
type TableRow struct {
	Leg      schema.LegKind `json:"leg"`
	Title    string         `json:"title"`
	Party    string         `json:"party"`
	Currency string         `json:"currency"`
	Cells    []TableCell    `json:"cells"`
	Subtotal string         `json:"subtotal"`
}

// Table is the structured rendering for on-screen and print layouts.
// Columns stay stable across rows: the header lists every container type
// priced by any section.
type Table struct {
	Columns     []schema.ContainerType `json:"columns"`
	Rows        []TableRow             `json:"rows"`
	GeneratedAt string                 `json:"generatedAt"`
	ValidDays   int                    `json:"validDays"`
	Disclaimer  string                 `json:"disclaimer"`
}

// RenderTable projects the document into table rows. It reads the same
// computed line items as RenderText; totals can never diverge between the
// two renderings.
func RenderTable(doc *Document) Table {
	table := Table{
		GeneratedAt: doc.GeneratedAt.Format("2006-01-02 15:04:05"),
		ValidDays:   doc.ValidDays,
		Disclaimer:  doc.Disclaimer,
	}

	seen := make(map[schema.ContainerType]bool)
	for _, section := range doc.Sections {
		for _, item := range section.Result.LineItems {
			if !seen[item.ContainerType] {
				seen[item.ContainerType] = true
			}
		}
	}
	for _, containerType := range schema.AllContainerTypes {
		if seen[containerType] {
			table.Columns = append(table.Columns, containerType)
		}
	}

	for _, section := range doc.Sections {
		row := TableRow{
			Leg:      section.Kind,
			Title:    section.Title,
			Party:    section.Party,
			Currency: section.Result.Currency,
			Subtotal: section.Result.Subtotal.StringFixed(2),
		}
		for _, item := range section.Result.LineItems {
			row.Cells = append(row.Cells, TableCell{
				ContainerType: item.ContainerType,
				Quantity:      item.Quantity,
				UnitPrice:     item.UnitPrice.StringFixed(2),
				LineTotal:     item.LineTotal.StringFixed(2),
			})
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
