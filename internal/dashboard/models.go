package dashboard

// ViewInfo describes one dashboard tab to the frontend.
type ViewInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Chart       string `json:"chart"`
}

// CountyRow is the tabular form of a single-period county result. Margin is
// null when undefined (zero total votes): JSON has no NaN, and the raw table
// keeps every valid row even when the map cannot color it.
type CountyRow struct {
	FIPS       string   `json:"fips"`
	CountyName string   `json:"county_name"`
	State      string   `json:"state"`
	VotesGOP   int      `json:"votes_gop"`
	VotesDem   int      `json:"votes_dem"`
	TotalVotes int      `json:"total_votes"`
	Margin     *float64 `json:"margin"`
}

// ShiftTableRow is the tabular form of a two-period joined county row.
type ShiftTableRow struct {
	FIPS       string   `json:"fips"`
	CountyName string   `json:"county_name"`
	State      string   `json:"state"`
	TotalVotes int      `json:"total_votes"`
	MarginCur  *float64 `json:"margin_cur"`
	MarginPrev *float64 `json:"margin_prev"`
	Shift      *float64 `json:"shift"`
	Winner     string   `json:"winner,omitempty"`
}

// EnergyTableRow is the tabular form of a joined country-year row.
type EnergyTableRow struct {
	ISOCode        string  `json:"iso_code"`
	Country        string  `json:"country"`
	Year           int     `json:"year"`
	ElectricityTWh float64 `json:"electricity_twh"`
	CO2PerCapita   float64 `json:"co2_per_capita"`
	GDPPerCapita   float64 `json:"gdp_per_capita"`
}

// MixTableRow is the long-format tabular form of an electricity mix view:
// one fuel's share of one country-year's production.
type MixTableRow struct {
	Country string  `json:"country"`
	Year    int     `json:"year"`
	Source  string  `json:"source"`
	Share   float64 `json:"share"`
}

// FuelTableRow is the tabular form of a top-producers view.
type FuelTableRow struct {
	Country string  `json:"country"`
	Year    int     `json:"year"`
	Source  string  `json:"source"`
	TWh     float64 `json:"twh"`
}

// TableResponse wraps any view's raw joined table.
type TableResponse struct {
	View     string      `json:"view"`
	RowCount int         `json:"row_count"`
	Excluded int         `json:"excluded_rows,omitempty"`
	Rows     interface{} `json:"rows"`
}
