package schema

// Enum for ContainerType. The set is closed: price tables and selections
// reject anything outside it at construction time.
type ContainerType string

const (
	C20GP  ContainerType = "20GP"
	C40GP  ContainerType = "40GP"
	C40HC  ContainerType = "40HC"
	C45HC  ContainerType = "45HC"
	C20NOR ContainerType = "20NOR"
	C40NOR ContainerType = "40NOR"
)

var AllContainerTypes = []ContainerType{C20GP, C40GP, C40HC, C45HC, C20NOR, C40NOR}

var validContainerType = map[ContainerType]bool{
	C20GP:  true,
	C40GP:  true,
	C40HC:  true,
	C45HC:  true,
	C20NOR: true,
	C40NOR: true,
}

func (c ContainerType) Valid() bool {
	return validContainerType[c]
}

// Enum for CargoMode
type CargoMode string

const (
	FCL CargoMode = "fcl"
	LCL CargoMode = "lcl"
	AIR CargoMode = "air"
)

// Enum for LegKind
type LegKind string

const (
	Precarriage LegKind = "precarriage"
	Mainline    LegKind = "mainline"
	Oncarriage  LegKind = "oncarriage"
)

var AllLegKinds = []LegKind{Precarriage, Mainline, Oncarriage}

// Enum for TransitType
type TransitType string

const (
	Direct      TransitType = "direct"
	Transit     TransitType = "transit"
	Unspecified TransitType = "unspecified"
)

type ServiceTerm string

const (
	DDP ServiceTerm = "DDP"
	DDU ServiceTerm = "DDU"
	DAP ServiceTerm = "DAP"
	FOB ServiceTerm = "FOB"
	CIF ServiceTerm = "CIF"
)

// MaxContainerSelections caps the per-query selection list.
const MaxContainerSelections = 5

type ContainerSelection struct {
	Type  ContainerType `json:"type" validate:"required"`
	Count int           `json:"count" validate:"gte=0"`
}

// ServiceFlags toggles which legs participate in pricing and combination.
// The wire names mirror the console checkboxes.
type ServiceFlags struct {
	Precarriage bool `json:"precarriage"`
	Mainline    bool `json:"mainline"`
	Oncarriage  bool `json:"lastmile"`
}

func (f ServiceFlags) Enabled(leg LegKind) bool {
	switch leg {
	case Precarriage:
		return f.Precarriage
	case Mainline:
		return f.Mainline
	case Oncarriage:
		return f.Oncarriage
	}
	return false
}
