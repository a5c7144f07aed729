package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/VoteScope/VS-Dashboards/internal/chart"
	"github.com/VoteScope/VS-Dashboards/internal/config"
	"github.com/VoteScope/VS-Dashboards/internal/dataset"
	"github.com/VoteScope/VS-Dashboards/internal/pipeline"
	"github.com/VoteScope/VS-Dashboards/internal/session"
	"github.com/VoteScope/VS-Dashboards/internal/utils"
)

// ViewsHandler lists the configured dashboard views.
func ViewsHandler(w http.ResponseWriter, r *http.Request) {
	views := make([]ViewInfo, 0, len(cfg.Views))
	for _, v := range cfg.Views {
		views = append(views, ViewInfo{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			Chart:       v.Chart,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

// FigureHandler runs one full pipeline pass for the view and returns its
// figure. Failures are scoped to this view; other views are unaffected.
func FigureHandler(w http.ResponseWriter, r *http.Request) {
	v, s, ok := viewAndSession(w, r)
	if !ok {
		return
	}

	start := time.Now()
	fig, err := buildFigure(s, v)
	if err != nil {
		writeViewError(w, v.ID, err)
		return
	}

	addServerTiming(w, [2]string{"pipeline", fmt.Sprintf("%.1f", float64(time.Since(start).Microseconds())/1000)})
	writeJSON(w, http.StatusOK, fig)
}

// TableHandler returns the view's raw joined table, including rows the map
// cannot color (undefined margins).
func TableHandler(w http.ResponseWriter, r *http.Request) {
	v, s, ok := viewAndSession(w, r)
	if !ok {
		return
	}

	resp, err := buildTable(s, v)
	if err != nil {
		writeViewError(w, v.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ReloadHandler drops the session's cached copy of a dataset so the next
// render re-reads the source file.
func ReloadHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")
	if _, ok := cfg.DatasetByID(id); !ok {
		http.Error(w, "Unknown dataset: "+id, http.StatusNotFound)
		return
	}
	s, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing session", http.StatusInternalServerError)
		return
	}
	s.Invalidate(id)
	w.WriteHeader(http.StatusNoContent)
}

func viewAndSession(w http.ResponseWriter, r *http.Request) (config.View, *session.Session, bool) {
	v, ok := cfg.ViewByID(chi.URLParam(r, "viewID"))
	if !ok {
		http.Error(w, "Unknown view: "+chi.URLParam(r, "viewID"), http.StatusNotFound)
		return config.View{}, nil, false
	}
	s, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing session", http.StatusInternalServerError)
		return config.View{}, nil, false
	}
	return v, s, true
}

// buildFigure dispatches on the view's chart type. Each branch is one
// synchronous pass: load through the session, join, compute metrics, adapt.
func buildFigure(s *session.Session, v config.View) (*chart.Figure, error) {
	switch v.Chart {
	case config.ChartChoropleth:
		t, err := loadCountyTable(s, v.Dataset)
		if err != nil {
			return nil, err
		}
		return chart.CountyChoropleth(pipeline.Margins(t), boundaries, stateLabels, v.Title), nil

	case config.ChartMarginScatter:
		cur, err := loadCountyTable(s, v.Dataset)
		if err != nil {
			return nil, err
		}
		prev, err := loadCountyTable(s, v.CompareDataset)
		if err != nil {
			return nil, err
		}
		rows := pipeline.JoinMargins(cur, prev)
		xLabel := fmt.Sprintf("%d GOP margin", prev.Year)
		yLabel := fmt.Sprintf("%d GOP margin", cur.Year)
		return chart.MarginScatter(rows, v.Title, xLabel, yLabel), nil

	case config.ChartEnergyScatter:
		recs, _, err := loadEnergyJoin(s, v)
		if err != nil {
			return nil, err
		}
		if v.Year != 0 {
			recs = pipeline.FilterYear(recs, v.Year)
		}
		return chart.EnergyScatter(recs, v.Title), nil

	case config.ChartElectricityMix:
		e, err := loadEnergyRows(s, v.Dataset)
		if err != nil {
			return nil, err
		}
		return chart.ElectricityMixArea(pipeline.MixForCountry(e.rows, v.Country), v.Title), nil

	case config.ChartTopFuel:
		e, err := loadEnergyRows(s, v.Dataset)
		if err != nil {
			return nil, err
		}
		top := pipeline.TopProducers(e.rows, v.Fuel, v.Year, topN(v))
		return chart.TopFuelBar(top, v.Fuel, v.Title), nil
	}
	return nil, fmt.Errorf("view %s: unknown chart %q", v.ID, v.Chart)
}

// topN applies the default producer count for top_fuel views.
func topN(v config.View) int {
	if v.TopN > 0 {
		return v.TopN
	}
	return 10
}

func buildTable(s *session.Session, v config.View) (*TableResponse, error) {
	switch v.Chart {
	case config.ChartChoropleth:
		t, err := loadCountyTable(s, v.Dataset)
		if err != nil {
			return nil, err
		}
		rows := make([]CountyRow, 0, len(t.Records))
		for _, m := range pipeline.Margins(t) {
			rows = append(rows, CountyRow{
				FIPS:       m.FIPS,
				CountyName: m.CountyName,
				State:      m.State,
				VotesGOP:   m.VotesGOP,
				VotesDem:   m.VotesDem,
				TotalVotes: m.TotalVotes,
				Margin:     floatOrNull(m.Margin),
			})
		}
		return &TableResponse{View: v.ID, RowCount: len(rows), Excluded: t.Excluded, Rows: rows}, nil

	case config.ChartMarginScatter:
		cur, err := loadCountyTable(s, v.Dataset)
		if err != nil {
			return nil, err
		}
		prev, err := loadCountyTable(s, v.CompareDataset)
		if err != nil {
			return nil, err
		}
		joined := pipeline.JoinMargins(cur, prev)
		rows := make([]ShiftTableRow, 0, len(joined))
		for _, j := range joined {
			rows = append(rows, ShiftTableRow{
				FIPS:       j.FIPS,
				CountyName: j.CountyName,
				State:      j.State,
				TotalVotes: j.TotalVotes,
				MarginCur:  floatOrNull(j.MarginCur),
				MarginPrev: floatOrNull(j.MarginPrev),
				Shift:      floatOrNull(j.Shift),
				Winner:     j.Winner,
			})
		}
		return &TableResponse{View: v.ID, RowCount: len(rows), Rows: rows}, nil

	case config.ChartEnergyScatter:
		recs, excluded, err := loadEnergyJoin(s, v)
		if err != nil {
			return nil, err
		}
		if v.Year != 0 {
			recs = pipeline.FilterYear(recs, v.Year)
		}
		rows := make([]EnergyTableRow, 0, len(recs))
		for _, rec := range recs {
			rows = append(rows, EnergyTableRow{
				ISOCode:        rec.ISOCode,
				Country:        rec.Country,
				Year:           rec.Year,
				ElectricityTWh: rec.ElectricityTWh,
				CO2PerCapita:   rec.CO2PerCapita,
				GDPPerCapita:   rec.GDPPerCapita,
			})
		}
		return &TableResponse{View: v.ID, RowCount: len(rows), Excluded: excluded, Rows: rows}, nil

	case config.ChartElectricityMix:
		e, err := loadEnergyRows(s, v.Dataset)
		if err != nil {
			return nil, err
		}
		mix := pipeline.MixForCountry(e.rows, v.Country)
		rows := make([]MixTableRow, 0, len(mix.Series)*len(mix.Years))
		for _, series := range mix.Series {
			for i, share := range series.Shares {
				rows = append(rows, MixTableRow{
					Country: mix.Country,
					Year:    mix.Years[i],
					Source:  series.Source,
					Share:   share,
				})
			}
		}
		return &TableResponse{View: v.ID, RowCount: len(rows), Excluded: e.excluded, Rows: rows}, nil

	case config.ChartTopFuel:
		e, err := loadEnergyRows(s, v.Dataset)
		if err != nil {
			return nil, err
		}
		top := pipeline.TopProducers(e.rows, v.Fuel, v.Year, topN(v))
		rows := make([]FuelTableRow, 0, len(top))
		for _, p := range top {
			rows = append(rows, FuelTableRow{
				Country: p.Country,
				Year:    p.Year,
				Source:  p.Source,
				TWh:     p.TWh,
			})
		}
		return &TableResponse{View: v.ID, RowCount: len(rows), Excluded: e.excluded, Rows: rows}, nil
	}
	return nil, fmt.Errorf("view %s: unknown chart %q", v.ID, v.Chart)
}

// loadCountyTable reads a county results dataset through the session cache.
func loadCountyTable(s *session.Session, id string) (*dataset.CountyTable, error) {
	d, ok := cfg.DatasetByID(id)
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q", id)
	}
	t, err := s.Load(id, func() (interface{}, error) {
		return dataset.LoadCountiesFile(d.Path, d.Year)
	})
	if err != nil {
		return nil, err
	}
	return t.(*dataset.CountyTable), nil
}

type energyRows struct {
	rows     []dataset.EnergyRow
	excluded int
}

type co2Rows struct {
	rows     []dataset.CO2Row
	excluded int
}

type gdpRows struct {
	rows     []dataset.GDPRow
	excluded int
}

// loadEnergyRows reads the electricity dataset through the session cache.
func loadEnergyRows(s *session.Session, id string) (*energyRows, error) {
	v, err := loadWith(s, id, func(path string) (interface{}, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		rows, excluded, err := dataset.LoadEnergy(f)
		if err != nil {
			return nil, err
		}
		return &energyRows{rows: rows, excluded: excluded}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*energyRows), nil
}

// loadEnergyJoin loads the three country-year sources through the session
// and inner-joins them on (ISO, year). The excluded count sums the rows each
// source dropped during load.
func loadEnergyJoin(s *session.Session, v config.View) ([]dataset.CountryYearRecord, int, error) {
	energy, err := loadEnergyRows(s, v.Dataset)
	if err != nil {
		return nil, 0, err
	}

	co2, err := loadWith(s, v.CO2Dataset, func(path string) (interface{}, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		rows, excluded, err := dataset.LoadCO2(f)
		if err != nil {
			return nil, err
		}
		return &co2Rows{rows: rows, excluded: excluded}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	gdp, err := loadWith(s, v.GDPDataset, func(path string) (interface{}, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		rows, excluded, err := dataset.LoadGDP(f)
		if err != nil {
			return nil, err
		}
		return &gdpRows{rows: rows, excluded: excluded}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	c := co2.(*co2Rows)
	g := gdp.(*gdpRows)
	excluded := energy.excluded + c.excluded + g.excluded
	return pipeline.JoinEnergy(energy.rows, c.rows, g.rows), excluded, nil
}

func loadWith(s *session.Session, id string, load func(path string) (interface{}, error)) (interface{}, error) {
	d, ok := cfg.DatasetByID(id)
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q", id)
	}
	return s.Load(id, func() (interface{}, error) {
		return load(d.Path)
	})
}

func floatOrNull(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[dashboard] encode response: %v", err)
	}
}

// writeViewError maps pipeline failures to user-facing responses: dataset
// input problems (missing column, unreadable file) get a readable 422,
// anything else a 500. Either way the failure stays scoped to this view.
func writeViewError(w http.ResponseWriter, viewID string, err error) {
	var missing *dataset.MissingColumnError
	if errors.As(err, &missing) {
		log.Printf("[dashboard] view %s: %v", viewID, err)
		http.Error(w, missing.Error(), http.StatusUnprocessableEntity)
		return
	}
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("[dashboard] view %s: %v", viewID, err)
		http.Error(w, "Dataset file not found: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	log.Printf("[dashboard] view %s failed: %v", viewID, err)
	http.Error(w, "Failed to render view", http.StatusInternalServerError)
}
