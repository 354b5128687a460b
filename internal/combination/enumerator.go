package combination

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"ratehub/internal/pricing"
	"ratehub/internal/schema"
)

// Placeholder stands in for a disabled leg's rate ref so table columns stay
// stable whether or not the leg participates.
const Placeholder = "-"

// NoCandidatesError reports an enabled leg with an empty candidate list;
// enumeration aborts without producing a partial result.
type NoCandidatesError struct {
	Leg schema.LegKind
}

func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf("no %s rates to combine", e.Leg)
}

// Candidates are the per-leg rate lists feeding the Cartesian product.
type Candidates struct {
	Precarriage []*schema.PrecarriageRate `json:"precarriageRates"`
	Mainline    []*schema.MainlineRate    `json:"mainlineRates"`
	Oncarriage  []*schema.OncarriageRate  `json:"oncarriageRates"`
}

// Candidate is one feasible leg combination with its composed totals.
type Candidate struct {
	Key            string          `json:"key"`
	PrecarriageRef string          `json:"precarriageRate"`
	MainlineRef    string          `json:"mainlineRate"`
	OncarriageRef  string          `json:"oncarriageRate"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	Currency       string          `json:"currency"`
	MixedCurrency  bool            `json:"mixedCurrency,omitempty"`
	TransitDays    int             `json:"transitTime"`
	Etd            string          `json:"etd"`
	Eta            string          `json:"eta"`
}

// CurrencyConverter turns a leg subtotal into the quote currency. The
// default identity converter leaves amounts untouched; candidates whose
// legs disagree on currency are flagged MixedCurrency instead of being
// silently summed.
type CurrencyConverter interface {
	Convert(amount decimal.Decimal, from, to string) decimal.Decimal
}

type identityConverter struct{}

func (identityConverter) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	return amount
}

// TransitComposer folds the per-leg transit durations into one figure.
// Summation is the default; parallel-leg setups can override.
type TransitComposer func(legDays []int) int

func SumTransitDays(legDays []int) int {
	total := 0
	for _, days := range legDays {
		total += days
	}
	return total
}

// Enumerator computes the restricted Cartesian product of candidate rates.
type Enumerator struct {
	QuoteCurrency string
	Converter     CurrencyConverter
	Compose       TransitComposer
	Selections    []schema.ContainerSelection
	CargoMode     schema.CargoMode
}

func NewEnumerator(selections []schema.ContainerSelection, mode schema.CargoMode) *Enumerator {
	return &Enumerator{
		QuoteCurrency: "USD",
		Converter:     identityConverter{},
		Compose:       SumTransitDays,
		Selections:    selections,
		CargoMode:     mode,
	}
}

// Enumerate walks every triple of candidates across the enabled legs.
// Disabled legs contribute a single placeholder so the product shape never
// changes. Candidates keep insertion order; sorting is a separate,
// stable step so ties preserve it.
func (e *Enumerator) Enumerate(candidates Candidates, flags schema.ServiceFlags) ([]Candidate, error) {
	precarriage := candidates.Precarriage
	mainline := candidates.Mainline
	oncarriage := candidates.Oncarriage

	if flags.Precarriage && len(precarriage) == 0 {
		return nil, &NoCandidatesError{Leg: schema.Precarriage}
	}
	if flags.Mainline && len(mainline) == 0 {
		return nil, &NoCandidatesError{Leg: schema.Mainline}
	}
	if flags.Oncarriage && len(oncarriage) == 0 {
		return nil, &NoCandidatesError{Leg: schema.Oncarriage}
	}
	if !flags.Precarriage {
		precarriage = []*schema.PrecarriageRate{nil}
	}
	if !flags.Mainline {
		mainline = []*schema.MainlineRate{nil}
	}
	if !flags.Oncarriage {
		oncarriage = []*schema.OncarriageRate{nil}
	}

	var combos []Candidate
	seq := 0
	for _, pre := range precarriage {
		for _, main := range mainline {
			for _, on := range oncarriage {
				seq++
				candidate, err := e.compose(seq, pre, main, on)
				if err != nil {
					return nil, err
				}
				combos = append(combos, candidate)
			}
		}
	}
	return combos, nil
}

func (e *Enumerator) compose(seq int, pre *schema.PrecarriageRate, main *schema.MainlineRate, on *schema.OncarriageRate) (Candidate, error) {
	candidate := Candidate{
		Key:            fmt.Sprintf("combo-%d", seq),
		PrecarriageRef: Placeholder,
		MainlineRef:    Placeholder,
		OncarriageRef:  Placeholder,
		TotalPrice:     decimal.Zero,
		Currency:       e.QuoteCurrency,
		Etd:            Placeholder,
		Eta:            Placeholder,
	}

	var transitLegs []int
	addLeg := func(rate pricing.Rate, kind schema.LegKind) error {
		result, err := pricing.PriceLeg(rate, kind, e.Selections, e.CargoMode)
		if err != nil {
			return err
		}
		if result.Currency != e.QuoteCurrency {
			candidate.MixedCurrency = true
		}
		converted := e.Converter.Convert(result.Subtotal, result.Currency, e.QuoteCurrency)
		candidate.TotalPrice = candidate.TotalPrice.Add(converted)
		return nil
	}

	if pre != nil {
		if err := addLeg(pre, schema.Precarriage); err != nil {
			return Candidate{}, err
		}
		candidate.PrecarriageRef = pre.CertNo
		transitLegs = append(transitLegs, pre.TransitDays)
	}
	if main != nil {
		if err := addLeg(main, schema.Mainline); err != nil {
			return Candidate{}, err
		}
		candidate.MainlineRef = main.CertNo
		transitLegs = append(transitLegs, main.TransitDays)
		candidate.Etd = main.Etd
		candidate.Eta = main.Eta
	}
	if on != nil {
		if err := addLeg(on, schema.Oncarriage); err != nil {
			return Candidate{}, err
		}
		candidate.OncarriageRef = on.CertNo
		transitLegs = append(transitLegs, on.TransitDays)
		if main != nil {
			candidate.Eta = shiftDate(main.Eta, on.TransitDays)
		}
	}
	candidate.TransitDays = e.Compose(transitLegs)
	return candidate, nil
}

func shiftDate(date string, days int) string {
	layout := "2006-01-02"
	parsed, err := time.Parse(layout, date)
	if err != nil {
		return date
	}
	return parsed.AddDate(0, 0, days).Format(layout)
}

// SortByTotalPrice orders candidates cheapest first; insertion order breaks
// ties.
func SortByTotalPrice(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TotalPrice.LessThan(candidates[j].TotalPrice)
	})
}

// SortByTransitTime orders candidates fastest first; insertion order breaks
// ties.
func SortByTransitTime(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TransitDays < candidates[j].TransitDays
	})
}
