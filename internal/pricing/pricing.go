package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"ratehub/internal/schema"
)

var ErrNilRate = errors.New("no rate selected for leg")

// Rate is the uniform view the three schema rate records present to pricing.
type Rate interface {
	Ref() string
	RateCurrency() string
	UnitPrice(t schema.ContainerType) (string, bool)
	FlatUnitPrice() string
}

// LineItem is one priced container-type row. Derived, never stored.
type LineItem struct {
	ContainerType schema.ContainerType `json:"containerType"`
	Quantity      int                  `json:"quantity"`
	UnitPrice     decimal.Decimal      `json:"unitPrice"`
	LineTotal     decimal.Decimal      `json:"lineTotal"`
	Currency      string               `json:"currency"`
	Defaulted     bool                 `json:"defaulted,omitempty"`
}

// Warning flags a price that had to be defaulted to zero. The charge still
// goes through at zero; the caller decides whether that is acceptable.
type Warning struct {
	ContainerType schema.ContainerType `json:"containerType"`
	Raw           string               `json:"raw,omitempty"`
	Reason        string               `json:"reason"`
}

// LegResult is the priced output for one leg, in the rate's own currency.
type LegResult struct {
	Leg       schema.LegKind       `json:"leg"`
	RateRef   string               `json:"rateRef"`
	Currency  string               `json:"currency"`
	LineItems []LineItem           `json:"lineItems"`
	Subtotal  decimal.Decimal      `json:"subtotal"`
	Warnings  []Warning            `json:"warnings,omitempty"`
}

// PriceLeg prices one selected rate against the container selection set.
// Selections with zero count are skipped; an all-zero set yields an empty
// line-item list and subtotal 0. FCL looks the unit price up per container
// type; lcl and air charge the rate's flat price for every entry. A missing
// or unparsable price charges zero and raises a Warning rather than failing
// the whole leg. Pure function of its inputs apart from the warn log.
func PriceLeg(rate Rate, leg schema.LegKind, selections []schema.ContainerSelection, mode schema.CargoMode) (LegResult, error) {
	if rate == nil {
		return LegResult{}, ErrNilRate
	}
	result := LegResult{
		Leg:      leg,
		RateRef:  rate.Ref(),
		Currency: rate.RateCurrency(),
		Subtotal: decimal.Zero,
	}
	for _, sel := range selections {
		if sel.Count <= 0 {
			continue
		}
		var raw string
		found := true
		if mode == schema.FCL {
			raw, found = rate.UnitPrice(sel.Type)
		} else {
			raw = rate.FlatUnitPrice()
		}
		unitPrice, parsed := ParsePrice(raw)
		if !found || !parsed {
			reason := "unparsable unit price"
			if !found {
				reason = "no unit price for container type"
			}
			result.Warnings = append(result.Warnings, Warning{ContainerType: sel.Type, Raw: raw, Reason: reason})
			log.Warnf("pricing: %s rate %s %s priced as zero: %s", leg, rate.Ref(), sel.Type, reason)
		}
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(sel.Count)))
		result.LineItems = append(result.LineItems, LineItem{
			ContainerType: sel.Type,
			Quantity:      sel.Count,
			UnitPrice:     unitPrice,
			LineTotal:     lineTotal,
			Currency:      result.Currency,
			Defaulted:     !found || !parsed,
		})
		result.Subtotal = result.Subtotal.Add(lineTotal)
	}
	return result, nil
}
