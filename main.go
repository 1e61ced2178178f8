package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"airbnb-compare/config"
	"airbnb-compare/models"
	"airbnb-compare/services"
	"airbnb-compare/storage"
	"airbnb-compare/utils"
)

func main() {
	var (
		city1   = flag.String("city", "", "first city to show")
		city2   = flag.String("compare", "", "optional second city")
		euro    = flag.Bool("euro", false, "show prices in EUR")
		heatmap = flag.Bool("heatmap", false, "build heatmap points")
		export  = flag.String("export", "", "write statistics to this .csv or .xlsx file")
		list    = flag.Bool("list", false, "list available cities and exit")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := utils.NewLoggerWithOptions(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	rates := services.NewCachedRate(
		services.NewRateClient(cfg.RateURL, cfg.RateTimeout, cfg.RateMaxAttempts, logger),
		cfg.RateCacheTTL,
	)
	dash := services.NewDashboard(services.DashboardOptions{
		DataDir:           cfg.DataDir,
		ListingsFile:      cfg.ListingsFile,
		OutlierMultiplier: cfg.OutlierMultiplier,
		HeatmapPrecision:  cfg.HeatmapPrecision,
	},
		storage.NewListingReader(logger),
		storage.NewBoundaryReader(cfg.BoundariesFile, logger),
		services.NewCurrencyConverter(rates, logger),
		logger,
	)

	cities, err := dash.Cities()
	if err != nil {
		logger.Error("Failed to list cities: %v", err)
		os.Exit(1)
	}
	if *list || *city1 == "" {
		if len(cities) == 0 {
			logger.Warn("No cities found in %s", cfg.DataDir)
		}
		fmt.Printf("Available cities: %s\n", strings.Join(cities, ", "))
		return
	}

	sel := models.Selection{
		Cities:      []string{*city1, *city2},
		UseEuro:     *euro,
		ShowHeatmap: *heatmap,
	}
	logger.Info("Computing dashboard for %s (currency %s)", strings.Join(nonEmpty(sel.Cities), " vs. "), sel.Currency())

	views, err := dash.Compute(context.Background(), sel)
	services.NewPrinter(os.Stdout).Print(views)

	if *export != "" {
		var sink storage.ReportSink = storage.NewReportWriter()
		if werr := sink.Write(*export, views); werr != nil {
			logger.Error("Export failed: %v", werr)
			os.Exit(1)
		}
		logger.Info("Statistics written to %s", *export)
	}

	if err != nil {
		logger.Error("Dashboard finished with errors: %v", err)
		os.Exit(1)
	}
}

func nonEmpty(ss []string) []string {
	out := ss[:0:0]
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
