package pipeline_test

import (
	"testing"

	"github.com/VoteScope/VS-Dashboards/internal/dataset"
	"github.com/VoteScope/VS-Dashboards/internal/pipeline"
)

func energyRow(country string, year int, fuels map[string]float64) dataset.EnergyRow {
	total := 0.0
	for _, v := range fuels {
		total += v
	}
	return dataset.EnergyRow{
		ISOCode:        "TST",
		Country:        country,
		Year:           year,
		ElectricityTWh: total,
		Fuels:          fuels,
	}
}

func TestMixForCountry_SharesPerYear(t *testing.T) {
	rows := []dataset.EnergyRow{
		energyRow("Testland", 2021, map[string]float64{"coal": 75, "wind": 25}),
		energyRow("Testland", 2020, map[string]float64{"coal": 40, "wind": 60}),
		energyRow("Elsewhere", 2020, map[string]float64{"hydro": 100}),
	}

	mix := pipeline.MixForCountry(rows, "Testland")

	if len(mix.Years) != 2 || mix.Years[0] != 2020 || mix.Years[1] != 2021 {
		t.Fatalf("expected ascending years [2020 2021], got %v", mix.Years)
	}
	if len(mix.Series) != 2 {
		t.Fatalf("expected 2 fuel series, got %d", len(mix.Series))
	}
	// Coal peaks at 75, wind at 60: coal stacks first.
	if mix.Series[0].Source != "coal" || mix.Series[1].Source != "wind" {
		t.Errorf("expected peak-ordered sources [coal wind], got [%s %s]",
			mix.Series[0].Source, mix.Series[1].Source)
	}
	if got := mix.Series[0].Shares[0]; got != 0.4 {
		t.Errorf("expected coal share 0.4 in 2020, got %v", got)
	}
	if got := mix.Series[1].Shares[1]; got != 0.25 {
		t.Errorf("expected wind share 0.25 in 2021, got %v", got)
	}
	// The other country's hydro must not leak in.
	for _, s := range mix.Series {
		if s.Source == "hydro" {
			t.Error("unexpected hydro series from another country")
		}
	}
}

func TestMixForCountry_SharesSumToOne(t *testing.T) {
	rows := []dataset.EnergyRow{
		energyRow("Testland", 2022, map[string]float64{"coal": 3, "gas": 5, "solar": 2}),
	}
	mix := pipeline.MixForCountry(rows, "Testland")

	sum := 0.0
	for _, s := range mix.Series {
		sum += s.Shares[0]
	}
	if diff := sum - 1; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("expected shares to sum to 1, got %v", sum)
	}
}

func TestMixForCountry_ZeroTotalYear(t *testing.T) {
	rows := []dataset.EnergyRow{
		energyRow("Testland", 2020, map[string]float64{"coal": 0, "wind": 0}),
		energyRow("Testland", 2021, map[string]float64{"coal": 10}),
	}
	mix := pipeline.MixForCountry(rows, "Testland")

	for _, s := range mix.Series {
		if s.Shares[0] != 0 {
			t.Errorf("expected zero share for zero-total year, got %v for %s", s.Shares[0], s.Source)
		}
	}
}

func TestMixForCountry_NoBreakdownIsEmpty(t *testing.T) {
	rows := []dataset.EnergyRow{
		{ISOCode: "TST", Country: "Testland", Year: 2020, ElectricityTWh: 100},
	}
	mix := pipeline.MixForCountry(rows, "Testland")
	if len(mix.Series) != 0 || len(mix.Years) != 0 {
		t.Errorf("expected empty mix without fuel columns, got %+v", mix)
	}
}

func TestTopProducers(t *testing.T) {
	rows := []dataset.EnergyRow{
		energyRow("A", 2023, map[string]float64{"coal": 30}),
		energyRow("B", 2023, map[string]float64{"coal": 50}),
		energyRow("C", 2023, map[string]float64{"coal": 10}),
		energyRow("D", 2023, map[string]float64{"wind": 99}),
		energyRow("B", 2022, map[string]float64{"coal": 500}),
	}

	top := pipeline.TopProducers(rows, "coal", 2023, 2)

	if len(top) != 2 {
		t.Fatalf("expected 2 producers, got %d", len(top))
	}
	// Smallest first so bars read bottom-up.
	if top[0].Country != "A" || top[1].Country != "B" {
		t.Errorf("expected [A B] ascending, got [%s %s]", top[0].Country, top[1].Country)
	}
	if top[1].TWh != 50 {
		t.Errorf("expected B at 50 TWh, got %v", top[1].TWh)
	}
}

func TestTopProducers_MissingFuelOmitted(t *testing.T) {
	rows := []dataset.EnergyRow{
		energyRow("A", 2023, map[string]float64{"wind": 5}),
	}
	if top := pipeline.TopProducers(rows, "coal", 2023, 10); len(top) != 0 {
		t.Errorf("expected no producers without the fuel, got %v", top)
	}
}
