package pipeline_test

import (
	"testing"

	"github.com/VoteScope/VS-Dashboards/internal/dataset"
	"github.com/VoteScope/VS-Dashboards/internal/pipeline"
)

func TestJoinEnergy_InnerJoinOnISOYear(t *testing.T) {
	energy := []dataset.EnergyRow{
		{ISOCode: "USA", Country: "United States", Year: 2022, ElectricityTWh: 4243},
		{ISOCode: "FRA", Country: "France", Year: 2022, ElectricityTWh: 445},
		{ISOCode: "USA", Country: "United States", Year: 2021, ElectricityTWh: 4100},
	}
	co2 := []dataset.CO2Row{
		{ISOCode: "USA", Year: 2022, CO2PerCapita: 14.9},
		{ISOCode: "FRA", Year: 2022, CO2PerCapita: 4.6},
	}
	gdp := []dataset.GDPRow{
		{ISOCode: "USA", Year: 2022, GDPPerCapita: 64000},
		// France 2022 missing: the row must be omitted, not imputed.
	}

	recs := pipeline.JoinEnergy(energy, co2, gdp)
	if len(recs) != 1 {
		t.Fatalf("expected 1 joined record, got %d", len(recs))
	}
	r := recs[0]
	if r.ISOCode != "USA" || r.Year != 2022 || r.CO2PerCapita != 14.9 || r.GDPPerCapita != 64000 {
		t.Errorf("unexpected joined record: %+v", r)
	}
}

func TestFilterYear(t *testing.T) {
	recs := []dataset.CountryYearRecord{
		{ISOCode: "USA", Year: 2021},
		{ISOCode: "USA", Year: 2022},
		{ISOCode: "FRA", Year: 2022},
	}
	got := pipeline.FilterYear(recs, 2022)
	if len(got) != 2 {
		t.Fatalf("expected 2 records for 2022, got %d", len(got))
	}
	for _, r := range got {
		if r.Year != 2022 {
			t.Errorf("unexpected year %d", r.Year)
		}
	}
}
