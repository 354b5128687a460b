package schema

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// use a single instance of Validate, it caches struct info
var RequestValidate *validator.Validate

func init() {
	RequestValidate = validator.New(validator.WithRequiredStructEnabled())

	// Function to check if port code is valid format
	errPort := RequestValidate.RegisterValidation("portCodeValidation", func(fl validator.FieldLevel) bool {
		regex := regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{3}$`)
		value := fl.Field().String()
		return regex.MatchString(value)
	})
	if errPort != nil {
		return
	}

	// Function to check if a string is in the YYYY-MM-DD format
	errDate := RequestValidate.RegisterValidation("isValidDate", func(fl validator.FieldLevel) bool {
		const layout = "2006-01-02"
		value := fl.Field().String()
		_, err := time.Parse(layout, value)
		return err == nil
	})
	if errDate != nil {
		return
	}

	RequestValidate.RegisterStructValidation(RateQueryValidation, RateQueryParams{})
}

// RateQueryParams are the step-one query criteria of the combination rate
// workflow. Port codes are UN/LOCODE for sea cargo, IATA codes for air.
type RateQueryParams struct {
	TransitType   TransitType          `json:"transitType" validate:"omitempty,oneof=direct transit unspecified" description:"Direct, transshipment, or either"`
	Route         string               `json:"route" validate:"omitempty" description:"Trade lane, e.g. Transpacific Eastbound"`
	DeparturePort string               `json:"departurePort" validate:"required" description:"Port Of Loading or air origin"`
	DischargePort string               `json:"dischargePort" validate:"required" description:"Port Of Discharge or air destination"`
	TransitPort   string               `json:"transitPort" validate:"omitempty" description:"Port Of Transshipment" example:"KRPUS"`
	Carrier       string               `json:"shipCompany" validate:"omitempty" description:"Carrier or airline; empty means any"`
	ServiceTerm   ServiceTerm          `json:"serviceTerms" validate:"omitempty,oneof=DDP DDU DAP FOB CIF"`
	CargoMode     CargoMode            `json:"cargoType" validate:"required,oneof=fcl lcl air"`
	Selections    []ContainerSelection `json:"containers" validate:"omitempty,max=5,dive"`
	Weight        float64              `json:"weight" validate:"omitempty,gt=0" description:"KGS, lcl/air only"`
	Volume        float64              `json:"volume" validate:"omitempty,gt=0" description:"CBM, lcl/air only"`
	Flags         ServiceFlags         `json:"services"`
	StartDate     string               `json:"startDate" validate:"omitempty,isValidDate" description:"YYYY-MM-DD"`
}

var portCodeRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{3}$`)

func RateQueryValidation(sl validator.StructLevel) {
	q := sl.Current().Interface().(RateQueryParams)

	// Sea cargo uses five-character UN/LOCODEs. Air origins are IATA codes
	// and skip the check.
	if q.CargoMode != AIR {
		if !portCodeRegex.MatchString(q.DeparturePort) {
			sl.ReportError(q.DeparturePort, "departurePort", "DeparturePort", "portCodeValidation", q.DeparturePort)
		}
		if !portCodeRegex.MatchString(q.DischargePort) {
			sl.ReportError(q.DischargePort, "dischargePort", "DischargePort", "portCodeValidation", q.DischargePort)
		}
	}

	if q.TransitType == Transit && q.TransitPort == "" {
		sl.ReportError(q.TransitPort, "transitPort", "TransitPort", "required for transshipment", "")
	}

	switch q.CargoMode {
	case FCL:
		if len(q.Selections) == 0 {
			sl.ReportError(q.Selections, "containers", "Selections", "required for fcl", "")
		}
		seen := make(map[ContainerType]bool, len(q.Selections))
		for _, sel := range q.Selections {
			if !sel.Type.Valid() {
				sl.ReportError(sel.Type, "containers", "Selections", "unknown container type", string(sel.Type))
			}
			if seen[sel.Type] {
				sl.ReportError(sel.Type, "containers", "Selections", "duplicate container type", string(sel.Type))
			}
			seen[sel.Type] = true
		}
	case LCL, AIR:
		if q.Weight == 0 && q.Volume == 0 {
			sl.ReportError(q.Weight, "weight", "Weight", "weight or volume required", "")
		}
	}
}
