package chart

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/VoteScope/VS-Dashboards/internal/pipeline"
)

var sourceCaser = cases.Title(language.AmericanEnglish)

// ElectricityMixArea renders one country's production shares as a stacked
// area chart, one trace per fuel in the mix's stacking order, y axis pinned
// to [0, 1]. An empty mix renders as a placeholder figure.
func ElectricityMixArea(mix pipeline.ElectricityMix, title string) *Figure {
	if len(mix.Series) == 0 {
		return Placeholder(title)
	}

	years := make([]float64, len(mix.Years))
	for i, y := range mix.Years {
		years[i] = float64(y)
	}

	data := make([]Trace, 0, len(mix.Series))
	for _, s := range mix.Series {
		text := make([]string, len(s.Shares))
		for i, share := range s.Shares {
			text[i] = fmt.Sprintf("%s<br>%d: %.1f%%", sourceLabel(s.Source), mix.Years[i], share*100)
		}
		data = append(data, Trace{
			Type:       "scatter",
			Mode:       "lines",
			Name:       sourceLabel(s.Source),
			X:          years,
			Y:          s.Shares,
			Text:       text,
			HoverInfo:  "text",
			StackGroup: "mix",
			FillColor:  fuelColor(s.Source),
			Line:       &Line{Color: fuelColor(s.Source), Width: 0.5},
		})
	}

	return &Figure{
		Data: data,
		Layout: Layout{
			Title: &Title{Text: title, X: 0.02, XAnchor: "left"},
			XAxis: &Axis{Title: &Title{Text: "Year"}},
			YAxis: &Axis{
				Title:      &Title{Text: "Share of Total Electricity Production"},
				Range:      &[2]float64{0, 1},
				TickFormat: ".0%",
			},
			HoverMode: "closest",
			Legend:    &Legend{Title: &Title{Text: "Source"}},
		},
	}
}

// TopFuelBar renders the largest producers of one fuel in one year as a
// horizontal bar chart, smallest at the bottom, labeled with the produced
// TWh. Empty input renders as a placeholder figure.
func TopFuelBar(rows []pipeline.FuelProduction, source, title string) *Figure {
	if len(rows) == 0 {
		return Placeholder(title)
	}

	bar := Trace{
		Type:         "bar",
		Orientation:  "h",
		HoverInfo:    "y+x",
		TextPosition: "outside",
		Marker:       &Marker{Color: fuelColor(source)},
	}
	for _, r := range rows {
		bar.X = append(bar.X, r.TWh)
		bar.YLabels = append(bar.YLabels, r.Country)
		bar.Text = append(bar.Text, hoverPrinter.Sprintf("%.1f", r.TWh))
	}

	return &Figure{
		Data: []Trace{bar},
		Layout: Layout{
			Title:  &Title{Text: title, X: 0.02, XAnchor: "left"},
			XAxis:  &Axis{Title: &Title{Text: "Electricity Produced (TWh)"}},
			Margin: &Margin{L: 140, R: 40, T: 60, B: 40},
		},
	}
}

// sourceLabel turns a snake_case source id into its display label.
func sourceLabel(source string) string {
	return sourceCaser.String(strings.ReplaceAll(source, "_", " "))
}
