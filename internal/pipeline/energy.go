package pipeline

import (
	"github.com/VoteScope/VS-Dashboards/internal/dataset"
)

type isoYear struct {
	iso  string
	year int
}

// JoinEnergy inner-joins the three country-year sources on (ISO code, year).
// Only keys present in all three tables survive, mirroring how the dashboard
// treats a country-year with any missing metric: omitted, not imputed.
// Output order follows the energy table.
func JoinEnergy(energy []dataset.EnergyRow, co2 []dataset.CO2Row, gdp []dataset.GDPRow) []dataset.CountryYearRecord {
	co2By := make(map[isoYear]dataset.CO2Row, len(co2))
	for _, r := range co2 {
		co2By[isoYear{r.ISOCode, r.Year}] = r
	}
	gdpBy := make(map[isoYear]dataset.GDPRow, len(gdp))
	for _, r := range gdp {
		gdpBy[isoYear{r.ISOCode, r.Year}] = r
	}

	out := make([]dataset.CountryYearRecord, 0, len(energy))
	for _, e := range energy {
		key := isoYear{e.ISOCode, e.Year}
		c, okC := co2By[key]
		g, okG := gdpBy[key]
		if !okC || !okG {
			continue
		}
		out = append(out, dataset.CountryYearRecord{
			ISOCode:        e.ISOCode,
			Country:        e.Country,
			Year:           e.Year,
			ElectricityTWh: e.ElectricityTWh,
			CO2PerCapita:   c.CO2PerCapita,
			GDPPerCapita:   g.GDPPerCapita,
		})
	}
	return out
}

// FilterYear keeps only the records for one year, preserving order.
func FilterYear(recs []dataset.CountryYearRecord, year int) []dataset.CountryYearRecord {
	var out []dataset.CountryYearRecord
	for _, r := range recs {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}
