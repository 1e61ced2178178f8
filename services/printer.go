package services

import (
	"fmt"
	"io"
	"strings"

	"airbnb-compare/models"
	"airbnb-compare/utils"
)

// Printer renders city views as a terminal report with German number formatting.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Print(views []models.CityView) {
	sep := strings.Repeat("═", 60)
	thin := strings.Repeat("─", 60)

	fmt.Fprintf(p.out, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(p.out, "\033[1;35m  📊 CITY COMPARISON\033[0m\n")
	fmt.Fprintf(p.out, "\033[1;35m%s\033[0m\n\n", sep)

	if len(views) == 0 {
		fmt.Fprintf(p.out, "  No city selected\n")
	}
	for _, v := range views {
		p.printCity(v, thin)
	}

	fmt.Fprintf(p.out, "\033[1;35m%s\033[0m\n\n", sep)
}

func (p *Printer) printCity(v models.CityView, thin string) {
	fmt.Fprintf(p.out, "\033[1;36m  %s\033[0m  (prices in %s)\n", v.City, v.Currency)
	fmt.Fprintf(p.out, "  %s\n", thin)

	for _, w := range v.Warnings {
		fmt.Fprintf(p.out, "  \033[33m⚠ %s\033[0m\n", w)
	}
	for _, e := range v.Errors {
		fmt.Fprintf(p.out, "  \033[31m✗ %s\033[0m\n", e)
	}

	if v.HasListings {
		fmt.Fprintf(p.out, "  Cleaned dataset : %s listings\n", utils.DeFormatInt(len(v.Listings)))
		fmt.Fprintf(p.out, "  Minimum price   : \033[1;32m%s\033[0m\n", utils.DeFormat(v.Overview.MinPrice, 2))
		fmt.Fprintf(p.out, "  Maximum price   : \033[1;32m%s\033[0m\n", utils.DeFormat(v.Overview.MaxPrice, 2))
		fmt.Fprintf(p.out, "  Average price   : \033[1;32m%s\033[0m\n", utils.DeFormat(v.Overview.AvgPrice, 2))
		if v.MostExpensive != nil {
			fmt.Fprintf(p.out, "  Top outlier     : \033[1;31m%s\033[0m (%s)\n",
				utils.DeFormat(v.MostExpensive.Price, 2), v.MostExpensive.NeighbourhoodGroup)
		}
		fmt.Fprintf(p.out, "  Avg min. nights : %.1f\n\n", v.AvgMinimumNights)

		fmt.Fprintf(p.out, "  %-18s %7s %12s %12s %12s\n", "Room type", "Count", "Min", "Avg", "Max")
		for _, s := range v.RoomStats {
			fmt.Fprintf(p.out, "  %-18s %7s %12s %12s %12s\n", truncate(s.RoomType, 18), utils.DeFormatInt(s.Count),
				utils.DeFormat(s.MinPrice, 2), utils.DeFormat(s.AvgPrice, 2), utils.DeFormat(s.MaxPrice, 2))
		}

		if n := len(v.Chart.Excluded); n > 0 {
			fmt.Fprintf(p.out, "\n  Charts hide %s listings above %s\n", utils.DeFormatInt(n), utils.DeFormat(v.Chart.UpperLimit, 2))
		}
	}

	if v.HasGeo {
		fmt.Fprintf(p.out, "\n  Map: %d regions, centre %.4f, %.4f", len(v.Boundaries), v.Center[0], v.Center[1])
		if len(v.Heatmap) > 0 {
			fmt.Fprintf(p.out, ", %d heatmap points", len(v.Heatmap))
		}
		fmt.Fprintln(p.out)
	}
	fmt.Fprintln(p.out)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
