package schema

import "database/sql"

// ContractRateRow mirrors one row of the contracted ocean freight rate
// query. Prices come back as display strings, one column per container
// type, with NULL for types the contract does not cover.
type ContractRateRow struct {
	CertNo          string
	DeparturePort   string
	DischargePort   string
	Carrier         string
	TransitPort     sql.NullString
	TransitType     string
	Currency        string
	Price20GP       sql.NullString
	Price40GP       sql.NullString
	Price40HC       sql.NullString
	Price45HC       sql.NullString
	Price20NOR      sql.NullString
	Price40NOR      sql.NullString
	ValidFrom       string
	ValidTo         string
	Etd             string
	Eta             string
	TransitDays     int
	FreeBoxDays     int
	FreeStorageDays int
}

// ToMainlineRate converts a database row into the wire shape the rate
// search streams, skipping NULL price columns.
func (row *ContractRateRow) ToMainlineRate() *MainlineRate {
	prices := make(PriceTable)
	for containerType, column := range map[ContainerType]sql.NullString{
		C20GP:  row.Price20GP,
		C40GP:  row.Price40GP,
		C40HC:  row.Price40HC,
		C45HC:  row.Price45HC,
		C20NOR: row.Price20NOR,
		C40NOR: row.Price40NOR,
	} {
		if column.Valid {
			prices[containerType] = column.String
		}
	}
	return &MainlineRate{
		CertNo:          row.CertNo,
		DeparturePort:   row.DeparturePort,
		DischargePort:   row.DischargePort,
		Carrier:         row.Carrier,
		TransitPort:     row.TransitPort.String,
		TransitType:     TransitType(row.TransitType),
		Prices:          prices,
		Currency:        row.Currency,
		ValidFrom:       row.ValidFrom,
		ValidTo:         row.ValidTo,
		Etd:             row.Etd,
		Eta:             row.Eta,
		TransitDays:     row.TransitDays,
		FreeBoxDays:     row.FreeBoxDays,
		FreeStorageDays: row.FreeStorageDays,
	}
}
