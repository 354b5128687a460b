package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var RateValidate *validator.Validate

func init() {
	RateValidate = validator.New(validator.WithRequiredStructEnabled())

	// Function to check if a string is in the YYYY-MM-DD format
	errDate := RateValidate.RegisterValidation("isValidDate", func(fl validator.FieldLevel) bool {
		const layout = "2006-01-02"
		value := fl.Field().String()
		_, err := time.Parse(layout, value)
		return err == nil
	})
	if errDate != nil {
		return
	}

	RateValidate.RegisterStructValidation(RateWindowValidation, MainlineRate{})
	RateValidate.RegisterStructValidation(OncarriageWindowValidation, OncarriageRate{})
}

// PriceTable maps a container type to its unit price as quoted by the
// vendor, display string included (e.g. "USD 1500.00"). Only types from the
// closed enum get in; NewPriceTable fails fast on anything else instead of
// letting lookups return empty strings later.
type PriceTable map[ContainerType]string

func NewPriceTable(prices map[string]string) (PriceTable, error) {
	table := make(PriceTable, len(prices))
	for rawType, price := range prices {
		containerType := ContainerType(strings.ToUpper(rawType))
		if !containerType.Valid() {
			return nil, fmt.Errorf("unknown container type %q in price table", rawType)
		}
		table[containerType] = price
	}
	return table, nil
}

func (t PriceTable) UnitPrice(containerType ContainerType) (string, bool) {
	price, ok := t[containerType]
	return price, ok
}

// MainlineRate is one port-to-port rate record. Immutable once fetched.
type MainlineRate struct {
	CertNo          string      `json:"certNo" validate:"required"`
	DeparturePort   string      `json:"departurePort" validate:"required"`
	DischargePort   string      `json:"dischargePort" validate:"required"`
	Carrier         string      `json:"shipCompany" validate:"required"`
	TransitPort     string      `json:"transitPort,omitempty"`
	TransitType     TransitType `json:"transitType" validate:"required,oneof=direct transit"`
	Prices          PriceTable  `json:"prices" validate:"required"`
	FlatPrice       string      `json:"flatPrice,omitempty"`
	Currency        string      `json:"currency" validate:"required,len=3"`
	ValidFrom       string      `json:"validFrom" validate:"required,isValidDate"`
	ValidTo         string      `json:"validTo" validate:"required,isValidDate"`
	Etd             string      `json:"etd" validate:"required,isValidDate"`
	Eta             string      `json:"eta" validate:"required,isValidDate"`
	TransitDays     int         `json:"transitTime" validate:"gte=0"`
	FreeBoxDays     int         `json:"freeBox" validate:"gte=0"`
	FreeStorageDays int         `json:"freeStorage" validate:"gte=0"`
}

func RateWindowValidation(sl validator.StructLevel) {
	layout := "2006-01-02"
	r := sl.Current().Interface().(MainlineRate)
	from, _ := time.Parse(layout, r.ValidFrom)
	to, _ := time.Parse(layout, r.ValidTo)
	if to.Before(from) {
		sl.ReportError(r.ValidFrom, "validFrom", "ValidFrom", "Non-chronological window", "")
		sl.ReportError(r.ValidTo, "validTo", "ValidTo", "Non-chronological window", "")
	}
	etd, _ := time.Parse(layout, r.Etd)
	eta, _ := time.Parse(layout, r.Eta)
	if eta.Before(etd) {
		sl.ReportError(r.Etd, "etd", "Etd", "Non-chronological event", "")
		sl.ReportError(r.Eta, "eta", "Eta", "Non-chronological event", "")
	}
}

// PrecarriageRate is an origin-to-port trucking/feeder rate record.
type PrecarriageRate struct {
	ID          string     `json:"id" validate:"required"`
	CertNo      string     `json:"certNo" validate:"required"`
	Kind        string     `json:"type,omitempty"`
	Origin      string     `json:"origin" validate:"required"`
	Destination string     `json:"destination" validate:"required"`
	Vendor      string     `json:"vendor" validate:"required"`
	Currency    string     `json:"currency" validate:"required,len=3"`
	Prices      PriceTable `json:"prices" validate:"required"`
	FlatPrice   string     `json:"flatPrice,omitempty"`
	ValidTo     string     `json:"validDate" validate:"required,isValidDate"`
	TransitDays int        `json:"transitTime" validate:"gte=0"`
}

// OncarriageRate is a port-to-door delivery rate record.
type OncarriageRate struct {
	ID            string     `json:"id" validate:"required"`
	CertNo        string     `json:"certNo" validate:"required"`
	Origin        string     `json:"origin" validate:"required"`
	AddressType   string     `json:"addressType,omitempty"`
	ZipCode       string     `json:"zipCode,omitempty"`
	Address       string     `json:"address,omitempty"`
	WarehouseCode *string    `json:"warehouseCode,omitempty"`
	Agent         string     `json:"agentName" validate:"required"`
	Currency      string     `json:"currency" validate:"required,len=3"`
	Prices        PriceTable `json:"prices" validate:"required"`
	FlatPrice     string     `json:"flatPrice,omitempty"`
	ValidFrom     string     `json:"validFrom" validate:"required,isValidDate"`
	ValidTo       string     `json:"validTo" validate:"required,isValidDate"`
	Remark        string     `json:"remark,omitempty"`
	Status        string     `json:"status,omitempty"`
	TransitDays   int        `json:"transitTime" validate:"gte=0"`
}

func OncarriageWindowValidation(sl validator.StructLevel) {
	layout := "2006-01-02"
	r := sl.Current().Interface().(OncarriageRate)
	from, _ := time.Parse(layout, r.ValidFrom)
	to, _ := time.Parse(layout, r.ValidTo)
	if to.Before(from) {
		sl.ReportError(r.ValidFrom, "validFrom", "ValidFrom", "Non-chronological window", "")
		sl.ReportError(r.ValidTo, "validTo", "ValidTo", "Non-chronological window", "")
	}
}

// Ref / RateCurrency / UnitPrice / FlatUnitPrice give the three records a
// uniform face for the pricing package.

func (r *MainlineRate) Ref() string          { return r.CertNo }
func (r *MainlineRate) RateCurrency() string { return r.Currency }
func (r *MainlineRate) UnitPrice(t ContainerType) (string, bool) {
	return r.Prices.UnitPrice(t)
}
func (r *MainlineRate) FlatUnitPrice() string { return r.FlatPrice }

func (r *PrecarriageRate) Ref() string          { return r.CertNo }
func (r *PrecarriageRate) RateCurrency() string { return r.Currency }
func (r *PrecarriageRate) UnitPrice(t ContainerType) (string, bool) {
	return r.Prices.UnitPrice(t)
}
func (r *PrecarriageRate) FlatUnitPrice() string { return r.FlatPrice }

func (r *OncarriageRate) Ref() string          { return r.CertNo }
func (r *OncarriageRate) RateCurrency() string { return r.Currency }
func (r *OncarriageRate) UnitPrice(t ContainerType) (string, bool) {
	return r.Prices.UnitPrice(t)
}
func (r *OncarriageRate) FlatUnitPrice() string { return r.FlatPrice }

// RateSearchResult groups the candidate lists returned for one query.
type RateSearchResult struct {
	PrecarriageRates []*PrecarriageRate `json:"precarriageRates"`
	MainlineRates    []*MainlineRate    `json:"mainlineRates"`
	OncarriageRates  []*OncarriageRate  `json:"oncarriageRates"`
}

// LegRates is one streamed search chunk: the candidates found for one leg.
type LegRates struct {
	Leg              LegKind            `json:"leg"`
	Source           string             `json:"source"`
	PrecarriageRates []*PrecarriageRate `json:"precarriageRates,omitempty"`
	MainlineRates    []*MainlineRate    `json:"mainlineRates,omitempty"`
	OncarriageRates  []*OncarriageRate  `json:"oncarriageRates,omitempty"`
}
