package source

// Column positions in the raw funding CSV. Headers are matched by position,
// never by name.
const (
	colSrNo = iota
	colDate
	colStartupName
	colIndustryVertical
	colSubVertical
	colCityLocation
	colInvestorsName
	colInvestmentType
	colAmountUSD
	colRemarks

	// NumColumns is the width a funding CSV header must have.
	NumColumns
)

// CanonicalHeader is the field order of the normalised record, as written by
// exports. The index and remarks columns are not part of it.
var CanonicalHeader = []string{
	"date",
	"startup_name",
	"industry_vertical",
	"sub_vertical",
	"city_location",
	"investors_name",
	"investment_type",
	"amount_usd",
}

// naMarkers are cell values read as missing, the same set a pandas
// read_csv treats as NaN by default. Cells are compared after trimming.
var naMarkers = map[string]struct{}{
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsNA reports whether a trimmed cell is a missing-value marker.
func IsNA(s string) bool {
	_, ok := naMarkers[s]
	return ok
}
