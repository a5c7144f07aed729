package main

import (
	"fmt"
	"math"
	"os"

	"github.com/VoteScope/VS-Dashboards/internal/config"
	"github.com/VoteScope/VS-Dashboards/internal/dataset"
	"github.com/VoteScope/VS-Dashboards/internal/pipeline"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "datacheck",
	Short: "Validate dashboard dataset files",
	Long:  "datacheck loads every dataset declared in the dashboard config through its schema descriptor and reports row counts, excluded rows, and undefined margins.",
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate all configured datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		failed := 0
		for _, d := range cfg.Datasets {
			if err := checkDataset(d); err != nil {
				fmt.Fprintf(os.Stderr, "FAIL %-20s %v\n", d.ID, err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d dataset(s) failed validation", failed)
		}
		return nil
	},
}

func checkDataset(d config.Dataset) error {
	switch d.Kind {
	case config.KindCountyResults:
		t, err := dataset.LoadCountiesFile(d.Path, d.Year)
		if err != nil {
			return err
		}
		undefined := 0
		for _, m := range pipeline.Margins(t) {
			if math.IsNaN(m.Margin) {
				undefined++
			}
		}
		fmt.Printf("OK   %-20s rows=%d excluded=%d undefined_margin=%d\n",
			d.ID, len(t.Records), t.Excluded, undefined)
		return nil

	case config.KindEnergy:
		return checkCountryYear(d, func(f *os.File) (int, int, error) {
			rows, excluded, err := dataset.LoadEnergy(f)
			return len(rows), excluded, err
		})
	case config.KindCO2:
		return checkCountryYear(d, func(f *os.File) (int, int, error) {
			rows, excluded, err := dataset.LoadCO2(f)
			return len(rows), excluded, err
		})
	case config.KindGDP:
		return checkCountryYear(d, func(f *os.File) (int, int, error) {
			rows, excluded, err := dataset.LoadGDP(f)
			return len(rows), excluded, err
		})
	}
	return fmt.Errorf("unknown kind %q", d.Kind)
}

func checkCountryYear(d config.Dataset, load func(*os.File) (int, int, error)) error {
	f, err := os.Open(d.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, excluded, err := load(f)
	if err != nil {
		return err
	}
	fmt.Printf("OK   %-20s rows=%d excluded=%d\n", d.ID, rows, excluded)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "dashboards.yaml", "dashboard config file")
	rootCmd.AddCommand(validateCmd)
}
