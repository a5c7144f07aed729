// Package chart is the presentation adapter: it turns finished, joined
// tables into figure objects the dashboard frontend renders with Plotly.
// Adapters never mutate the tables they are given, and identical inputs
// always produce identical encodings.
package chart

import (
	"encoding/json"

	"github.com/twpayne/go-geom/encoding/geojson"
)

// Figure is a renderable chart object: traces plus layout, serialized as
// Plotly figure JSON.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one data series. Only the fields used by the dashboard's chart
// types are modeled; omitempty keeps the wire format minimal. YLabels is the
// categorical form of the y axis for horizontal bars; when set it replaces Y
// on the wire.
type Trace struct {
	Type         string                     `json:"type"`
	Mode         string                     `json:"mode,omitempty"`
	Name         string                     `json:"name,omitempty"`
	X            []float64                  `json:"x,omitempty"`
	Y            []float64                  `json:"y,omitempty"`
	YLabels      []string                   `json:"-"`
	Lon          []float64                  `json:"lon,omitempty"`
	Lat          []float64                  `json:"lat,omitempty"`
	Locations    []string                   `json:"locations,omitempty"`
	Z            []float64                  `json:"z,omitempty"`
	GeoJSON      *geojson.FeatureCollection `json:"geojson,omitempty"`
	FeatureIDKey string                     `json:"featureidkey,omitempty"`
	Text         []string                   `json:"text,omitempty"`
	TextPosition string                     `json:"textposition,omitempty"`
	HoverInfo    string                     `json:"hoverinfo,omitempty"`
	Orientation  string                     `json:"orientation,omitempty"`
	StackGroup   string                     `json:"stackgroup,omitempty"`
	FillColor    string                     `json:"fillcolor,omitempty"`
	Line         *Line                      `json:"line,omitempty"`
	ColorScale   ColorScale                 `json:"colorscale,omitempty"`
	ZMin         *float64                   `json:"zmin,omitempty"`
	ZMax         *float64                   `json:"zmax,omitempty"`
	ZMid         *float64                   `json:"zmid,omitempty"`
	Marker       *Marker                    `json:"marker,omitempty"`
	TextFont     *Font                      `json:"textfont,omitempty"`
	ColorBar     *ColorBar                  `json:"colorbar,omitempty"`
	ShowLegend   *bool                      `json:"showlegend,omitempty"`
}

func (t Trace) MarshalJSON() ([]byte, error) {
	type plain Trace
	b, err := json.Marshal(plain(t))
	if err != nil || len(t.YLabels) == 0 {
		return b, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	if m["y"], err = json.Marshal(t.YLabels); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// ColorStop is one (position, color) pair of a color scale; positions run
// from 0 to 1. Serialized as the [pos, "#hex"] pair Plotly expects.
type ColorStop struct {
	Pos   float64
	Color string
}

func (s ColorStop) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{s.Pos, s.Color})
}

func (s *ColorStop) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &s.Pos); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &s.Color)
}

// ColorScale is an ordered list of stops.
type ColorScale []ColorStop

// Marker styles scatter points and choropleth region outlines. Plotly
// overloads marker.color and marker.size to take either a constant or a
// per-point array; Color/FixedSize hold the constant forms and
// ColorVals/Size the array forms.
type Marker struct {
	Color      string     `json:"-"`
	ColorVals  []float64  `json:"-"`
	FixedSize  float64    `json:"-"`
	Size       []float64  `json:"-"`
	SizeMode   string     `json:"sizemode,omitempty"`
	SizeRef    float64    `json:"sizeref,omitempty"`
	Opacity    float64    `json:"opacity,omitempty"`
	ColorScale ColorScale `json:"colorscale,omitempty"`
	ShowScale  bool       `json:"showscale,omitempty"`
	Line       *Line      `json:"line,omitempty"`
	ColorBar   *ColorBar  `json:"colorbar,omitempty"`
}

// markerJSON carries the overloaded color/size keys on the wire.
type markerJSON struct {
	Color      interface{} `json:"color,omitempty"`
	Size       interface{} `json:"size,omitempty"`
	SizeMode   string      `json:"sizemode,omitempty"`
	SizeRef    float64     `json:"sizeref,omitempty"`
	Opacity    float64     `json:"opacity,omitempty"`
	ColorScale ColorScale  `json:"colorscale,omitempty"`
	ShowScale  bool        `json:"showscale,omitempty"`
	Line       *Line       `json:"line,omitempty"`
	ColorBar   *ColorBar   `json:"colorbar,omitempty"`
}

func (m Marker) MarshalJSON() ([]byte, error) {
	out := markerJSON{
		SizeMode:   m.SizeMode,
		SizeRef:    m.SizeRef,
		Opacity:    m.Opacity,
		ColorScale: m.ColorScale,
		ShowScale:  m.ShowScale,
		Line:       m.Line,
		ColorBar:   m.ColorBar,
	}
	if len(m.ColorVals) > 0 {
		out.Color = m.ColorVals
	} else if m.Color != "" {
		out.Color = m.Color
	}
	if len(m.Size) > 0 {
		out.Size = m.Size
	} else if m.FixedSize > 0 {
		out.Size = m.FixedSize
	}
	return json.Marshal(out)
}

// Line styles region outlines, reference lines and shape borders.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

// Font styles text traces and titles.
type Font struct {
	Size  int    `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

// ColorBar configures the legend bar of a color-mapped trace.
type ColorBar struct {
	Title    string    `json:"title,omitempty"`
	TickVals []float64 `json:"tickvals,omitempty"`
	TickText []string  `json:"ticktext,omitempty"`
	Len      float64   `json:"len,omitempty"`
}

// Layout holds figure-level presentation settings.
type Layout struct {
	Title       *Title       `json:"title,omitempty"`
	Geo         *Geo         `json:"geo,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	Shapes      []Shape      `json:"shapes,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
	ShowLegend  *bool        `json:"showlegend,omitempty"`
	HoverMode   string       `json:"hovermode,omitempty"`
	PlotBG      string       `json:"plot_bgcolor,omitempty"`
	PaperBG     string       `json:"paper_bgcolor,omitempty"`
	Width       int          `json:"width,omitempty"`
	Height      int          `json:"height,omitempty"`
}

type Title struct {
	Text    string  `json:"text"`
	X       float64 `json:"x,omitempty"`
	XAnchor string  `json:"xanchor,omitempty"`
	Font    *Font   `json:"font,omitempty"`
}

// Geo configures map traces.
type Geo struct {
	Scope      string      `json:"scope,omitempty"`
	Projection *Projection `json:"projection,omitempty"`
}

type Projection struct {
	Type string `json:"type"`
}

type Axis struct {
	Title         *Title      `json:"title,omitempty"`
	Range         *[2]float64 `json:"range,omitempty"`
	ShowGrid      *bool       `json:"showgrid,omitempty"`
	ZeroLine      *bool       `json:"zeroline,omitempty"`
	ZeroLineColor string      `json:"zerolinecolor,omitempty"`
	ZeroLineWidth float64     `json:"zerolinewidth,omitempty"`
	TickFormat    string      `json:"tickformat,omitempty"`
	DTick         float64     `json:"dtick,omitempty"`
	ScaleAnchor   string      `json:"scaleanchor,omitempty"`
	ScaleRatio    float64     `json:"scaleratio,omitempty"`
}

// Shape draws reference lines and quadrant shading beneath the data.
type Shape struct {
	Type      string  `json:"type"`
	X0        float64 `json:"x0"`
	X1        float64 `json:"x1"`
	Y0        float64 `json:"y0"`
	Y1        float64 `json:"y1"`
	Line      *Line   `json:"line,omitempty"`
	FillColor string  `json:"fillcolor,omitempty"`
	Layer     string  `json:"layer,omitempty"`
}

// Annotation places free text on the figure; the placeholder figure for an
// empty table is a single annotation.
type Annotation struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref,omitempty"`
	YRef      string  `json:"yref,omitempty"`
	ShowArrow bool    `json:"showarrow"`
	Font      *Font   `json:"font,omitempty"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Legend struct {
	Title *Title `json:"title,omitempty"`
	Font  *Font  `json:"font,omitempty"`
}

func ptr[T any](v T) *T { return &v }

// Placeholder is the figure returned for a degenerate (empty) table: a blank
// frame with a centered notice, never an error.
func Placeholder(title string) *Figure {
	return &Figure{
		Data: []Trace{},
		Layout: Layout{
			Title: &Title{Text: title},
			Annotations: []Annotation{{
				Text: "No data available", X: 0.5, Y: 0.5,
				XRef: "paper", YRef: "paper",
				Font: &Font{Size: 16, Color: "#666666"},
			}},
		},
	}
}
