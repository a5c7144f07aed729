package dashboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/VoteScope/VS-Dashboards/internal/config"
	"github.com/VoteScope/VS-Dashboards/internal/geometry"
)

var (
	cfg         *config.Config
	boundaries  *geometry.Boundaries
	stateLabels []geometry.StateLabel
)

// Init wires the dashboard feature: stores the config and loads boundary
// geometry once at startup. A local path wins over a URL; map views need the
// county boundaries, so a config that declares choropleth views without any
// geometry source is rejected here rather than failing per-request.
func Init(c *config.Config) error {
	cfg = c

	needsMap := false
	for _, v := range c.Views {
		if v.Chart == config.ChartChoropleth {
			needsMap = true
			break
		}
	}

	client := geometry.NewClient()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var err error
	switch {
	case c.Geometry.CountiesPath != "":
		boundaries, err = geometry.LoadCountiesFile(c.Geometry.CountiesPath)
	case c.Geometry.CountiesURL != "":
		boundaries, err = client.Fetch(ctx, c.Geometry.CountiesURL)
	case needsMap:
		return fmt.Errorf("choropleth views configured but no county geometry source")
	default:
		boundaries = &geometry.Boundaries{}
	}
	if err != nil {
		return fmt.Errorf("load county boundaries: %w", err)
	}
	if boundaries.Len() > 0 {
		log.Printf("[dashboard] loaded %d county boundaries", boundaries.Len())
	}

	// State labels are a cosmetic overlay; failure to load them only costs
	// the map its state abbreviations.
	switch {
	case c.Geometry.StatesPath != "":
		stateLabels, err = geometry.LoadStateLabelsFile(c.Geometry.StatesPath)
	case c.Geometry.StatesURL != "":
		stateLabels, err = client.FetchStateLabels(ctx, c.Geometry.StatesURL)
	}
	if err != nil {
		log.Printf("[dashboard] WARNING: state labels unavailable: %v", err)
		stateLabels = nil
	}

	return nil
}
