// Package config loads the dashboard configuration: which dataset files
// exist, which views render them, and where boundary geometry comes from.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Dataset kinds, matching the schema descriptors in internal/dataset.
const (
	KindCountyResults = "county_results"
	KindEnergy        = "energy"
	KindCO2           = "co2"
	KindGDP           = "gdp"
)

// Chart types a view can request.
const (
	ChartChoropleth     = "choropleth"
	ChartMarginScatter  = "margin_scatter"
	ChartEnergyScatter  = "energy_scatter"
	ChartElectricityMix = "electricity_mix"
	ChartTopFuel        = "top_fuel"
)

// Dataset is one CSV source file.
type Dataset struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
	Year int    `yaml:"year,omitempty"`
}

// View is one named dashboard tab: a chart type bound to one or more
// datasets.
type View struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Chart       string `yaml:"chart"`
	Dataset     string `yaml:"dataset"`
	// CompareDataset is the previous-period table for margin_scatter views.
	CompareDataset string `yaml:"compare_dataset,omitempty"`
	// CO2Dataset / GDPDataset complete the three-way join for energy views.
	CO2Dataset string `yaml:"co2_dataset,omitempty"`
	GDPDataset string `yaml:"gdp_dataset,omitempty"`
	// Year filters energy views to a single year; 0 means all years.
	// Required for top_fuel views.
	Year int `yaml:"year,omitempty"`
	// Country selects whose production mix an electricity_mix view renders.
	Country string `yaml:"country,omitempty"`
	// Fuel and TopN configure top_fuel views; TopN defaults to 10.
	Fuel string `yaml:"fuel,omitempty"`
	TopN int    `yaml:"top_n,omitempty"`
}

// Geometry points at the boundary collaborator, either by URL (rate-limited
// fetch) or by local file path. Path wins when both are set.
type Geometry struct {
	CountiesURL  string `yaml:"counties_url,omitempty"`
	CountiesPath string `yaml:"counties_path,omitempty"`
	StatesURL    string `yaml:"states_url,omitempty"`
	StatesPath   string `yaml:"states_path,omitempty"`
}

type Config struct {
	Port     string    `yaml:"port,omitempty"`
	Geometry Geometry  `yaml:"geometry"`
	Datasets []Dataset `yaml:"datasets"`
	Views    []View    `yaml:"views"`
}

// Load reads and validates a YAML config file, then applies environment
// overrides (PORT, GEOMETRY_URL, GEOMETRY_PATH).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if cfg.Port == "" {
		cfg.Port = "5050"
	}
	if url := os.Getenv("GEOMETRY_URL"); url != "" {
		cfg.Geometry.CountiesURL = url
	}
	if p := os.Getenv("GEOMETRY_PATH"); p != "" {
		cfg.Geometry.CountiesPath = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks view/dataset cross-references and kinds so a bad config
// fails at startup, not mid-render.
func (c *Config) Validate() error {
	kinds := map[string]string{}
	for _, d := range c.Datasets {
		if d.ID == "" || d.Path == "" {
			return fmt.Errorf("dataset %q: id and path are required", d.ID)
		}
		switch d.Kind {
		case KindCountyResults, KindEnergy, KindCO2, KindGDP:
		default:
			return fmt.Errorf("dataset %q: unknown kind %q", d.ID, d.Kind)
		}
		if _, dup := kinds[d.ID]; dup {
			return fmt.Errorf("dataset %q: duplicate id", d.ID)
		}
		kinds[d.ID] = d.Kind
	}

	requireKind := func(viewID, datasetID, kind string) error {
		k, ok := kinds[datasetID]
		if !ok {
			return fmt.Errorf("view %q: unknown dataset %q", viewID, datasetID)
		}
		if k != kind {
			return fmt.Errorf("view %q: dataset %q is %s, want %s", viewID, datasetID, k, kind)
		}
		return nil
	}

	seen := map[string]bool{}
	for _, v := range c.Views {
		if v.ID == "" {
			return fmt.Errorf("view %q: id is required", v.Title)
		}
		if seen[v.ID] {
			return fmt.Errorf("view %q: duplicate id", v.ID)
		}
		seen[v.ID] = true

		switch v.Chart {
		case ChartChoropleth:
			if err := requireKind(v.ID, v.Dataset, KindCountyResults); err != nil {
				return err
			}
		case ChartMarginScatter:
			if err := requireKind(v.ID, v.Dataset, KindCountyResults); err != nil {
				return err
			}
			if v.CompareDataset == "" {
				return fmt.Errorf("view %q: margin_scatter needs compare_dataset", v.ID)
			}
			if err := requireKind(v.ID, v.CompareDataset, KindCountyResults); err != nil {
				return err
			}
		case ChartEnergyScatter:
			if err := requireKind(v.ID, v.Dataset, KindEnergy); err != nil {
				return err
			}
			if v.CO2Dataset == "" || v.GDPDataset == "" {
				return fmt.Errorf("view %q: energy_scatter needs co2_dataset and gdp_dataset", v.ID)
			}
			if err := requireKind(v.ID, v.CO2Dataset, KindCO2); err != nil {
				return err
			}
			if err := requireKind(v.ID, v.GDPDataset, KindGDP); err != nil {
				return err
			}
		case ChartElectricityMix:
			if err := requireKind(v.ID, v.Dataset, KindEnergy); err != nil {
				return err
			}
			if v.Country == "" {
				return fmt.Errorf("view %q: electricity_mix needs country", v.ID)
			}
		case ChartTopFuel:
			if err := requireKind(v.ID, v.Dataset, KindEnergy); err != nil {
				return err
			}
			if v.Fuel == "" {
				return fmt.Errorf("view %q: top_fuel needs fuel", v.ID)
			}
			if v.Year == 0 {
				return fmt.Errorf("view %q: top_fuel needs year", v.ID)
			}
		default:
			return fmt.Errorf("view %q: unknown chart %q", v.ID, v.Chart)
		}
	}
	return nil
}

// Dataset returns the dataset definition by id.
func (c *Config) DatasetByID(id string) (Dataset, bool) {
	for _, d := range c.Datasets {
		if d.ID == id {
			return d, true
		}
	}
	return Dataset{}, false
}

// ViewByID returns the view definition by id.
func (c *Config) ViewByID(id string) (View, bool) {
	for _, v := range c.Views {
		if v.ID == id {
			return v, true
		}
	}
	return View{}, false
}
