package external

import (
	"time"
)

// HaulageModeLabel maps a vendor haulage code to the label the console
// shows. Unmapped codes fall back to Truck.
func HaulageModeLabel(key string) (string, bool) {
	haulageModeList := map[string]string{
		"FTL":  "Truck",
		"LTL":  "Truck",
		"TRK":  "Truck",
		"DRAY": "Drayage",
		"BAR":  "Barge",
		"BCO":  "Barge",
		"RCO":  "Rail",
		"RR":   "Rail",
		"FEF":  "Feeder",
		"FEO":  "Feeder",
		"VSF":  "Feeder",
	}

	if value, ok := haulageModeList[key]; ok {
		return value, true
	}
	return "Truck", false // Default value if key is not found
}

// ConvertDateFormat normalizes a vendor timestamp to the date-only layout
// the rate records carry.
func ConvertDateFormat(originalDate *string, originalLayout string) string {
	newLayout := "2006-01-02"
	_, ok := time.Parse(newLayout, *originalDate)
	if ok == nil {
		return *originalDate
	}

	parsedTime, err := time.Parse(originalLayout, *originalDate)
	if err != nil {
		return ""
	}
	*originalDate = parsedTime.Format(newLayout)
	return *originalDate
}

// CalculateTransitDays derives transit days from the departure/arrival pair
// when the vendor omits an explicit figure.
func CalculateTransitDays(etd, eta *string) int {
	layout := "2006-01-02"
	if eta == nil || etd == nil {
		return 0
	}
	etaTime, err1 := time.Parse(layout, *eta)
	etdTime, err2 := time.Parse(layout, *etd)
	if err1 != nil || err2 != nil {
		return 0
	}

	return int(etaTime.Sub(etdTime).Hours() / 24)
}
