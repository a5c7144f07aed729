package pipeline

import (
	"sort"

	"github.com/VoteScope/VS-Dashboards/internal/dataset"
)

// MixSeries is one fuel's share of a country's electricity production, one
// value per mix year, each in [0, 1].
type MixSeries struct {
	Source string
	Shares []float64
}

// ElectricityMix is a country's production share by fuel across years.
// Series is ordered by each fuel's peak production, largest first, so a
// stacked area chart puts the dominant fuels at the bottom.
type ElectricityMix struct {
	Country string
	Years   []int
	Series  []MixSeries
}

// MixForCountry normalizes one country's per-fuel generation to shares of
// its yearly total. Years are ascending; a year whose fuels sum to zero gets
// zero shares. A country with no fuel breakdown yields an empty mix.
func MixForCountry(rows []dataset.EnergyRow, country string) ElectricityMix {
	byYear := map[int]map[string]float64{}
	peak := map[string]float64{}
	for _, r := range rows {
		if r.Country != country || len(r.Fuels) == 0 {
			continue
		}
		m := byYear[r.Year]
		if m == nil {
			m = make(map[string]float64, len(r.Fuels))
			byYear[r.Year] = m
		}
		for src, v := range r.Fuels {
			m[src] += v
			if m[src] > peak[src] {
				peak[src] = m[src]
			}
		}
	}
	if len(byYear) == 0 {
		return ElectricityMix{Country: country}
	}

	years := make([]int, 0, len(byYear))
	totals := make(map[int]float64, len(byYear))
	for y, m := range byYear {
		years = append(years, y)
		for _, v := range m {
			totals[y] += v
		}
	}
	sort.Ints(years)

	order := make([]string, 0, len(peak))
	for _, src := range dataset.FuelSources {
		if _, ok := peak[src]; ok {
			order = append(order, src)
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return peak[order[i]] > peak[order[j]] })

	mix := ElectricityMix{Country: country, Years: years}
	for _, src := range order {
		shares := make([]float64, len(years))
		for i, y := range years {
			if totals[y] > 0 {
				shares[i] = byYear[y][src] / totals[y]
			}
		}
		mix.Series = append(mix.Series, MixSeries{Source: src, Shares: shares})
	}
	return mix
}

// FuelProduction is one country's generation from a single fuel in one year.
type FuelProduction struct {
	Country string
	Year    int
	Source  string
	TWh     float64
}

// TopProducers returns the n largest producers of one fuel in one year,
// smallest first so a horizontal bar chart reads bottom-up. Countries with
// no value for the fuel are omitted, not treated as zero.
func TopProducers(rows []dataset.EnergyRow, source string, year, n int) []FuelProduction {
	var out []FuelProduction
	for _, r := range rows {
		if r.Year != year {
			continue
		}
		v, ok := r.Fuels[source]
		if !ok {
			continue
		}
		out = append(out, FuelProduction{Country: r.Country, Year: year, Source: source, TWh: v})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TWh > out[j].TWh })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
