package dataset

import "io"

// FuelSources lists the per-fuel generation columns in display order.
var FuelSources = []string{
	"biofuel", "coal", "gas", "hydro", "nuclear",
	"oil", "other_renewable", "solar", "wind",
}

// EnergyRow is one country-year electricity production figure, in TWh.
// Fuels breaks the total down by source; a fuel the file has no value for is
// simply absent from the map, never zero-filled.
type EnergyRow struct {
	ISOCode        string
	Country        string
	Year           int
	ElectricityTWh float64
	Fuels          map[string]float64
}

// CO2Row is one country-year per-capita CO2 emissions figure, in tonnes.
type CO2Row struct {
	ISOCode      string
	Year         int
	CO2PerCapita float64
}

// GDPRow is one country-year GDP per capita figure, PPP-adjusted dollars.
type GDPRow struct {
	ISOCode      string
	Year         int
	GDPPerCapita float64
}

// CountryYearRecord is the joined country-year row the energy dashboard
// renders: all three sources matched on (ISO code, year).
type CountryYearRecord struct {
	ISOCode        string
	Country        string
	Year           int
	ElectricityTWh float64
	CO2PerCapita   float64
	GDPPerCapita   float64
}

var EnergySchema = Schema{
	Name: "energy",
	Columns: []Column{
		{Name: "iso_code", Type: ColString, Aliases: []string{"iso_code", "code", "iso3"}},
		{Name: "country", Type: ColString, Aliases: []string{"country", "entity", "name"}},
		{Name: "year", Type: ColInt, Aliases: []string{"year"}},
		{Name: "electricity_twh", Type: ColFloat, Aliases: []string{"electricity_twh", "electricity_generation", "electricity"}},
		{Name: "biofuel", Type: ColFloat, Aliases: []string{"biofuel", "biofuel_electricity"}, Optional: true},
		{Name: "coal", Type: ColFloat, Aliases: []string{"coal", "coal_electricity"}, Optional: true},
		{Name: "gas", Type: ColFloat, Aliases: []string{"gas", "gas_electricity"}, Optional: true},
		{Name: "hydro", Type: ColFloat, Aliases: []string{"hydro", "hydro_electricity"}, Optional: true},
		{Name: "nuclear", Type: ColFloat, Aliases: []string{"nuclear", "nuclear_electricity"}, Optional: true},
		{Name: "oil", Type: ColFloat, Aliases: []string{"oil", "oil_electricity"}, Optional: true},
		{Name: "other_renewable", Type: ColFloat, Aliases: []string{"other_renewable", "other_renewable_exc_biofuel_electricity"}, Optional: true},
		{Name: "solar", Type: ColFloat, Aliases: []string{"solar", "solar_electricity"}, Optional: true},
		{Name: "wind", Type: ColFloat, Aliases: []string{"wind", "wind_electricity"}, Optional: true},
	},
}

var CO2Schema = Schema{
	Name: "co2",
	Columns: []Column{
		{Name: "iso_code", Type: ColString, Aliases: []string{"iso_code", "code", "iso3"}},
		{Name: "year", Type: ColInt, Aliases: []string{"year"}},
		{Name: "co2_per_capita", Type: ColFloat, Aliases: []string{"co2_per_capita", "emissions_total_per_capita", "co2"}},
	},
}

var GDPSchema = Schema{
	Name: "gdp",
	Columns: []Column{
		{Name: "iso_code", Type: ColString, Aliases: []string{"iso_code", "code", "economy", "iso3"}},
		{Name: "year", Type: ColInt, Aliases: []string{"year", "time"}},
		{Name: "gdp_per_capita", Type: ColFloat, Aliases: []string{"gdp_per_capita", "gdppercap", "gdp"}},
	},
}

// LoadEnergy reads a country-year electricity CSV. Rows without an ISO code
// (OWID aggregates like "World") or with uncoercible numbers are excluded.
func LoadEnergy(r io.Reader) ([]EnergyRow, int, error) {
	header, rows, err := readRecords(r)
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return nil, 0, nil
	}
	idx, err := EnergySchema.Resolve(header)
	if err != nil {
		return nil, 0, err
	}

	var out []EnergyRow
	excluded := 0
	for _, rec := range rows {
		iso := field(rec, idx["iso_code"])
		year, okY := parseCount(field(rec, idx["year"]))
		twh, okT := parseFloat(field(rec, idx["electricity_twh"]))
		if iso == "" || !okY || !okT || twh < 0 {
			excluded++
			continue
		}
		// Per-fuel cells are best-effort: a blank or uncoercible value drops
		// that fuel from the row, not the row from the table.
		var fuels map[string]float64
		for _, src := range FuelSources {
			i, ok := idx[src]
			if !ok {
				continue
			}
			v, okV := parseFloat(field(rec, i))
			if !okV || v < 0 {
				continue
			}
			if fuels == nil {
				fuels = make(map[string]float64, len(FuelSources))
			}
			fuels[src] = v
		}
		out = append(out, EnergyRow{
			ISOCode:        iso,
			Country:        field(rec, idx["country"]),
			Year:           year,
			ElectricityTWh: twh,
			Fuels:          fuels,
		})
	}
	return out, excluded, nil
}

// LoadCO2 reads a country-year per-capita emissions CSV.
func LoadCO2(r io.Reader) ([]CO2Row, int, error) {
	header, rows, err := readRecords(r)
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return nil, 0, nil
	}
	idx, err := CO2Schema.Resolve(header)
	if err != nil {
		return nil, 0, err
	}

	var out []CO2Row
	excluded := 0
	for _, rec := range rows {
		iso := field(rec, idx["iso_code"])
		year, okY := parseCount(field(rec, idx["year"]))
		co2, okC := parseFloat(field(rec, idx["co2_per_capita"]))
		if iso == "" || !okY || !okC {
			excluded++
			continue
		}
		out = append(out, CO2Row{ISOCode: iso, Year: year, CO2PerCapita: co2})
	}
	return out, excluded, nil
}

// LoadGDP reads a country-year GDP per capita CSV.
func LoadGDP(r io.Reader) ([]GDPRow, int, error) {
	header, rows, err := readRecords(r)
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return nil, 0, nil
	}
	idx, err := GDPSchema.Resolve(header)
	if err != nil {
		return nil, 0, err
	}

	var out []GDPRow
	excluded := 0
	for _, rec := range rows {
		iso := field(rec, idx["iso_code"])
		year, okY := parseCount(field(rec, idx["year"]))
		gdp, okG := parseFloat(field(rec, idx["gdp_per_capita"]))
		if iso == "" || !okY || !okG || gdp < 0 {
			excluded++
			continue
		}
		out = append(out, GDPRow{ISOCode: iso, Year: year, GDPPerCapita: gdp})
	}
	return out, excluded, nil
}
