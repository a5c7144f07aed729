package chart_test

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/VoteScope/VS-Dashboards/internal/chart"
	"github.com/VoteScope/VS-Dashboards/internal/dataset"
	"github.com/VoteScope/VS-Dashboards/internal/geometry"
	"github.com/VoteScope/VS-Dashboards/internal/pipeline"
)

const countiesJSON = `{"type":"FeatureCollection","features":[
  {"type":"Feature","properties":{"GEOID":"06001","NAME":"Alameda"},
   "geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
  {"type":"Feature","properties":{"GEOID":"06003","NAME":"Alpine"},
   "geometry":{"type":"Polygon","coordinates":[[[2,0],[3,0],[3,1],[2,1],[2,0]]]}}
]}`

func testBoundaries(t *testing.T) *geometry.Boundaries {
	t.Helper()
	b, err := geometry.ParseCounties([]byte(countiesJSON))
	if err != nil {
		t.Fatalf("ParseCounties failed: %v", err)
	}
	return b
}

func marginRow(fips string, gop, dem, total int) pipeline.MarginRow {
	return pipeline.MarginRow{
		CountyRecord: dataset.CountyRecord{
			FIPS: fips, CountyName: "County " + fips, State: "CA",
			VotesGOP: gop, VotesDem: dem, TotalVotes: total,
		},
		Margin: pipeline.Margin(gop, dem, total),
	}
}

// TestCountyChoropleth_FiltersUndefinedAndUnmatched verifies the two
// documented omissions: NaN margins never reach the color mapping and keys
// without geometry are left off the map.
func TestCountyChoropleth_FiltersUndefinedAndUnmatched(t *testing.T) {
	rows := []pipeline.MarginRow{
		marginRow("06001", 1000, 500, 1600),
		marginRow("06003", 0, 0, 0),    // undefined margin
		marginRow("99999", 10, 20, 40), // no geometry
	}
	fig := chart.CountyChoropleth(rows, testBoundaries(t), nil, "test map")

	if len(fig.Data) != 1 {
		t.Fatalf("expected 1 trace, got %d", len(fig.Data))
	}
	tr := fig.Data[0]
	if len(tr.Locations) != 1 || tr.Locations[0] != "06001" {
		t.Fatalf("expected only 06001 on the map, got %v", tr.Locations)
	}
	if tr.Z[0] != 31.25 {
		t.Errorf("expected z = 31.25 points, got %v", tr.Z[0])
	}
	if len(tr.GeoJSON.Features) != 1 {
		t.Errorf("expected geojson restricted to plotted keys, got %d features", len(tr.GeoJSON.Features))
	}

	// The figure must serialize cleanly: NaN has no JSON representation.
	if _, err := json.Marshal(fig); err != nil {
		t.Errorf("figure failed to marshal: %v", err)
	}
}

func TestCountyChoropleth_DoesNotMutateInput(t *testing.T) {
	rows := []pipeline.MarginRow{
		marginRow("06001", 1000, 500, 1600),
		marginRow("06003", 200, 800, 1100),
	}
	snapshot := make([]pipeline.MarginRow, len(rows))
	copy(snapshot, rows)

	chart.CountyChoropleth(rows, testBoundaries(t), nil, "test map")

	if !reflect.DeepEqual(rows, snapshot) {
		t.Error("adapter mutated its input rows")
	}
}

func TestCountyChoropleth_Deterministic(t *testing.T) {
	rows := []pipeline.MarginRow{
		marginRow("06001", 1000, 500, 1600),
		marginRow("06003", 200, 800, 1100),
	}
	labels := []geometry.StateLabel{{Code: "CA", Lon: 1, Lat: 1}}

	a, err := json.Marshal(chart.CountyChoropleth(rows, testBoundaries(t), labels, "test map"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(chart.CountyChoropleth(rows, testBoundaries(t), labels, "test map"))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("identical inputs produced different encodings")
	}
}

func TestCountyChoropleth_EmptyIsPlaceholder(t *testing.T) {
	fig := chart.CountyChoropleth(nil, testBoundaries(t), nil, "empty map")
	if len(fig.Data) != 0 {
		t.Errorf("expected no traces, got %d", len(fig.Data))
	}
	if len(fig.Layout.Annotations) != 1 {
		t.Fatalf("expected placeholder annotation, got %+v", fig.Layout.Annotations)
	}
}

func TestMarginScatter_GroupsByWinner(t *testing.T) {
	rows := []pipeline.ShiftRow{
		{FIPS: "06001", CountyName: "A", State: "CA", TotalVotes: 100, MarginCur: 0.2, MarginPrev: 0.1, Shift: 0.1, Winner: pipeline.WinnerGOP},
		{FIPS: "06003", CountyName: "B", State: "CA", TotalVotes: 100, MarginCur: -0.2, MarginPrev: -0.1, Shift: -0.1, Winner: pipeline.WinnerDem},
		{FIPS: "06005", CountyName: "C", State: "CA", TotalVotes: 100, MarginCur: math.NaN(), MarginPrev: 0.1, Shift: math.NaN(), Winner: ""},
	}
	fig := chart.MarginScatter(rows, "scatter", "2020", "2024")

	if len(fig.Data) != 2 {
		t.Fatalf("expected 2 winner traces (NaN row filtered), got %d", len(fig.Data))
	}
	if fig.Data[0].Name != pipeline.WinnerGOP || fig.Data[1].Name != pipeline.WinnerDem {
		t.Errorf("unexpected trace order: %s, %s", fig.Data[0].Name, fig.Data[1].Name)
	}
	// y = x reference line plus two quadrant rects.
	if len(fig.Layout.Shapes) != 3 {
		t.Errorf("expected 3 layout shapes, got %d", len(fig.Layout.Shapes))
	}
	// Symmetric axes.
	if fig.Layout.XAxis.Range[0] != -fig.Layout.XAxis.Range[1] {
		t.Errorf("x range not symmetric: %v", fig.Layout.XAxis.Range)
	}
	if _, err := json.Marshal(fig); err != nil {
		t.Errorf("figure failed to marshal: %v", err)
	}
}

func TestMarginScatter_EmptyIsPlaceholder(t *testing.T) {
	fig := chart.MarginScatter(nil, "scatter", "x", "y")
	if len(fig.Data) != 0 || len(fig.Layout.Annotations) != 1 {
		t.Errorf("expected placeholder figure, got %+v", fig)
	}
}

func TestEnergyScatter(t *testing.T) {
	recs := []dataset.CountryYearRecord{
		{ISOCode: "USA", Country: "United States", Year: 2022, ElectricityTWh: 4243, CO2PerCapita: 14.9, GDPPerCapita: 64000},
		{ISOCode: "FRA", Country: "France", Year: 2022, ElectricityTWh: 445, CO2PerCapita: 4.6, GDPPerCapita: 45000},
	}
	fig := chart.EnergyScatter(recs, "energy")

	if len(fig.Data) != 1 {
		t.Fatalf("expected 1 trace, got %d", len(fig.Data))
	}
	tr := fig.Data[0]
	if len(tr.X) != 2 || tr.X[0] != 64000 || tr.Y[0] != 14.9 {
		t.Errorf("unexpected points: x=%v y=%v", tr.X, tr.Y)
	}
	if tr.Marker == nil || !tr.Marker.ShowScale {
		t.Error("expected sequential color scale on marker")
	}
	if _, err := json.Marshal(fig); err != nil {
		t.Errorf("figure failed to marshal: %v", err)
	}
}

func TestEnergyScatter_EmptyIsPlaceholder(t *testing.T) {
	fig := chart.EnergyScatter(nil, "energy")
	if len(fig.Data) != 0 || len(fig.Layout.Annotations) != 1 {
		t.Errorf("expected placeholder figure, got %+v", fig)
	}
}

func TestElectricityMixArea(t *testing.T) {
	mix := pipeline.ElectricityMix{
		Country: "Testland",
		Years:   []int{2020, 2021},
		Series: []pipeline.MixSeries{
			{Source: "coal", Shares: []float64{0.6, 0.7}},
			{Source: "other_renewable", Shares: []float64{0.4, 0.3}},
		},
	}
	fig := chart.ElectricityMixArea(mix, "mix")

	if len(fig.Data) != 2 {
		t.Fatalf("expected one trace per fuel, got %d", len(fig.Data))
	}
	for _, tr := range fig.Data {
		if tr.StackGroup != "mix" {
			t.Errorf("trace %s not stacked", tr.Name)
		}
	}
	if fig.Data[1].Name != "Other Renewable" {
		t.Errorf("expected display label for other_renewable, got %q", fig.Data[1].Name)
	}
	if fig.Data[0].X[1] != 2021 || fig.Data[0].Y[1] != 0.7 {
		t.Errorf("unexpected coal points: x=%v y=%v", fig.Data[0].X, fig.Data[0].Y)
	}
	if r := fig.Layout.YAxis.Range; r == nil || r[0] != 0 || r[1] != 1 {
		t.Errorf("expected y range [0,1], got %v", r)
	}
	if _, err := json.Marshal(fig); err != nil {
		t.Errorf("figure failed to marshal: %v", err)
	}
}

func TestElectricityMixArea_EmptyIsPlaceholder(t *testing.T) {
	fig := chart.ElectricityMixArea(pipeline.ElectricityMix{Country: "Nowhere"}, "mix")
	if len(fig.Data) != 0 || len(fig.Layout.Annotations) != 1 {
		t.Errorf("expected placeholder figure, got %+v", fig)
	}
}

func TestTopFuelBar(t *testing.T) {
	rows := []pipeline.FuelProduction{
		{Country: "Smallland", Year: 2023, Source: "coal", TWh: 12.5},
		{Country: "Bigland", Year: 2023, Source: "coal", TWh: 50},
	}
	fig := chart.TopFuelBar(rows, "coal", "top coal")

	if len(fig.Data) != 1 {
		t.Fatalf("expected 1 bar trace, got %d", len(fig.Data))
	}
	tr := fig.Data[0]
	if tr.Type != "bar" || tr.Orientation != "h" {
		t.Errorf("expected a horizontal bar trace, got type=%s orientation=%s", tr.Type, tr.Orientation)
	}

	// The categorical y axis must carry the country names on the wire.
	raw, err := json.Marshal(fig)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Data []struct {
			X []float64 `json:"x"`
			Y []string  `json:"y"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if got := decoded.Data[0].Y; len(got) != 2 || got[0] != "Smallland" || got[1] != "Bigland" {
		t.Errorf("unexpected y categories: %v", got)
	}
	if decoded.Data[0].X[1] != 50 {
		t.Errorf("unexpected x values: %v", decoded.Data[0].X)
	}
}

func TestTopFuelBar_EmptyIsPlaceholder(t *testing.T) {
	fig := chart.TopFuelBar(nil, "coal", "top coal")
	if len(fig.Data) != 0 || len(fig.Layout.Annotations) != 1 {
		t.Errorf("expected placeholder figure, got %+v", fig)
	}
}
