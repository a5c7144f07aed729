package chart

import (
	"math"

	"github.com/VoteScope/VS-Dashboards/internal/dataset"
	"github.com/VoteScope/VS-Dashboards/internal/pipeline"
)

// MarginScatter plots each county's current-period margin against its
// previous-period margin, one winner-colored trace per label, with a dotted
// y = x reference line and quadrant shading marking counties that flipped
// direction. Rows with an undefined margin in either period are filtered.
func MarginScatter(rows []pipeline.ShiftRow, title, xLabel, yLabel string) *Figure {
	groups := map[string]*Trace{}
	order := []string{pipeline.WinnerGOP, pipeline.WinnerDem, pipeline.WinnerTie}
	maxAbs := 0.0

	for _, row := range rows {
		if math.IsNaN(row.MarginCur) || math.IsNaN(row.MarginPrev) {
			continue
		}
		tr, ok := groups[row.Winner]
		if !ok {
			tr = &Trace{
				Type:   "scatter",
				Mode:   "markers",
				Name:   row.Winner,
				Marker: &Marker{Color: winnerColors[row.Winner], FixedSize: 4, Opacity: 0.6},
			}
			groups[row.Winner] = tr
		}
		tr.X = append(tr.X, row.MarginPrev)
		tr.Y = append(tr.Y, row.MarginCur)
		tr.Text = append(tr.Text, hoverPrinter.Sprintf(
			"%s, %s<br>Prev: %.1f pts<br>Cur: %.1f pts<br>Total votes: %d",
			row.CountyName, row.State, row.MarginPrev*100, row.MarginCur*100, row.TotalVotes,
		))
		tr.HoverInfo = "text"
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(row.MarginPrev), math.Abs(row.MarginCur)))
	}
	if len(groups) == 0 {
		return Placeholder(title)
	}

	lim := maxAbs * 1.1
	rng := [2]float64{-lim, lim}

	var data []Trace
	for _, name := range order {
		if tr, ok := groups[name]; ok {
			data = append(data, *tr)
		}
	}

	axis := func(label string) *Axis {
		return &Axis{
			Title:         &Title{Text: label, Font: &Font{Size: 14, Color: "black"}},
			Range:         &rng,
			ShowGrid:      ptr(false),
			ZeroLine:      ptr(true),
			ZeroLineColor: "grey",
			ZeroLineWidth: 2,
			TickFormat:    ".0%",
			DTick:         0.2,
		}
	}
	yaxis := axis(yLabel)
	yaxis.ScaleAnchor = "x"
	yaxis.ScaleRatio = 1

	return &Figure{
		Data: data,
		Layout: Layout{
			Title:     &Title{Text: title, X: 0.5, XAnchor: "center", Font: &Font{Size: 20, Color: "black"}},
			XAxis:     axis(xLabel),
			YAxis:     yaxis,
			PlotBG:    "white",
			PaperBG:   "white",
			HoverMode: "closest",
			Width:     1000,
			Height:    800,
			Legend:    &Legend{Title: &Title{Text: "County Winner", Font: &Font{Size: 18, Color: "black"}}},
			Shapes: []Shape{
				{Type: "line", X0: -lim, Y0: -lim, X1: lim, Y1: lim,
					Line: &Line{Color: "gray", Width: 1, Dash: "dot"}},
				// flip quadrants: Dem prev / GOP now in red, the reverse in blue
				{Type: "rect", X0: -lim, X1: 0, Y0: 0, Y1: lim,
					FillColor: "rgba(255, 0, 0, 0.08)", Layer: "below"},
				{Type: "rect", X0: 0, X1: lim, Y0: -lim, Y1: 0,
					FillColor: "rgba(0, 0, 255, 0.08)", Layer: "below"},
			},
		},
	}
}

// EnergyScatter plots GDP per capita against CO2 per capita for one year,
// point size and color tracking electricity production on a sequential
// scale.
func EnergyScatter(recs []dataset.CountryYearRecord, title string) *Figure {
	if len(recs) == 0 {
		return Placeholder(title)
	}

	tr := Trace{
		Type:      "scatter",
		Mode:      "markers",
		HoverInfo: "text",
	}
	maxTWh := 0.0
	var sizes, colors []float64
	for _, r := range recs {
		tr.X = append(tr.X, r.GDPPerCapita)
		tr.Y = append(tr.Y, r.CO2PerCapita)
		sizes = append(sizes, r.ElectricityTWh)
		colors = append(colors, r.ElectricityTWh)
		tr.Text = append(tr.Text, hoverPrinter.Sprintf(
			"%s (%d)<br>GDP/cap: $%.0f<br>CO2/cap: %.2f t<br>Electricity: %.1f TWh",
			r.Country, r.Year, r.GDPPerCapita, r.CO2PerCapita, r.ElectricityTWh,
		))
		maxTWh = math.Max(maxTWh, r.ElectricityTWh)
	}

	// Plotly area sizing: sizeref scales the largest bubble to ~40px.
	sizeref := 1.0
	if maxTWh > 0 {
		sizeref = 2 * maxTWh / (40 * 40)
	}
	tr.Marker = &Marker{
		Size:       sizes,
		SizeMode:   "area",
		SizeRef:    sizeref,
		Opacity:    0.7,
		ColorVals:  colors,
		ColorScale: SequentialTeal(),
		ShowScale:  true,
		ColorBar:   &ColorBar{Title: "Electricity (TWh)"},
	}

	return &Figure{
		Data: []Trace{tr},
		Layout: Layout{
			Title:     &Title{Text: title, X: 0.5, XAnchor: "center"},
			XAxis:     &Axis{Title: &Title{Text: "GDP per capita (PPP $)"}},
			YAxis:     &Axis{Title: &Title{Text: "CO2 emissions per capita (t)"}},
			HoverMode: "closest",
		},
	}
}
