package chart

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/VoteScope/VS-Dashboards/internal/geometry"
	"github.com/VoteScope/VS-Dashboards/internal/pipeline"
)

// hoverPrinter formats raw vote counts with thousands separators for hover
// text.
var hoverPrinter = message.NewPrinter(language.AmericanEnglish)

// marginRange clamps the diverging scale to ±50 percentage points; beyond
// that, county results are effectively single-party and more resolution adds
// nothing.
const marginRange = 50.0

// CountyChoropleth renders county margins as a red-blue diverging map.
// Rows with an undefined margin (zero total votes) and rows with no boundary
// shape are filtered from the map; neither filtering touches the input slice.
// An empty result renders as a placeholder figure.
func CountyChoropleth(rows []pipeline.MarginRow, b *geometry.Boundaries, labels []geometry.StateLabel, title string) *Figure {
	var (
		locations []string
		z         []float64
		text      []string
	)
	for _, row := range rows {
		if math.IsNaN(row.Margin) {
			continue
		}
		if _, ok := b.Lookup(row.FIPS); !ok {
			continue
		}
		locations = append(locations, row.FIPS)
		z = append(z, row.Margin*100)
		text = append(text, hoverPrinter.Sprintf(
			"%s, %s<br>GOP: %d<br>Dem: %d<br>Margin: %.1f pts",
			row.CountyName, row.State, row.VotesGOP, row.VotesDem, row.Margin*100,
		))
	}
	if len(locations) == 0 {
		return Placeholder(title)
	}

	counties := Trace{
		Type:         "choropleth",
		GeoJSON:      b.Collection(locations),
		FeatureIDKey: "id",
		Locations:    locations,
		Z:            z,
		Text:         text,
		HoverInfo:    "text",
		ColorScale:   DivergingRedBlue(),
		ZMin:         ptr(-marginRange),
		ZMax:         ptr(marginRange),
		ZMid:         ptr(0.0),
		Marker:       &Marker{Line: &Line{Width: 0.2, Color: "rgba(80,80,80,0.7)"}},
		ColorBar: &ColorBar{
			Title:    "Margin",
			TickVals: []float64{-marginRange, 0, marginRange},
			TickText: []string{
				fmt.Sprintf("+%.0f%% Dem", marginRange),
				"0%",
				fmt.Sprintf("+%.0f%% GOP", marginRange),
			},
			Len: 0.75,
		},
	}

	fig := &Figure{
		Data: []Trace{counties},
		Layout: Layout{
			Title:  &Title{Text: title, X: 0.02, XAnchor: "left"},
			Geo:    &Geo{Scope: "usa", Projection: &Projection{Type: "albers usa"}},
			Margin: &Margin{L: 10, R: 10, T: 60, B: 10},
		},
	}

	if len(labels) > 0 {
		overlay := Trace{
			Type:       "scattergeo",
			Mode:       "text",
			HoverInfo:  "skip",
			TextFont:   &Font{Size: 12, Color: "black"},
			ShowLegend: ptr(false),
		}
		for _, l := range labels {
			overlay.Lon = append(overlay.Lon, l.Lon)
			overlay.Lat = append(overlay.Lat, l.Lat)
			overlay.Text = append(overlay.Text, l.Code)
		}
		fig.Data = append(fig.Data, overlay)
	}
	return fig
}
