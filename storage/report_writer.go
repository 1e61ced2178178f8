package storage

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"airbnb-compare/models"
)

// OverviewLabel marks the all-listings row of a report.
const OverviewLabel = "All"

var reportHeader = []string{"city", "currency", "room_type", "min_price", "max_price", "avg_price", "count"}

// ReportWriter exports per-city price statistics.
type ReportWriter struct{}

// NewReportWriter creates a ReportWriter.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// Write picks the format from the file extension: .xlsx or anything else as CSV.
func (w *ReportWriter) Write(path string, views []models.CityView) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return w.WriteXLSX(path, views)
	}
	return w.WriteCSV(path, views)
}

// WriteCSV writes one overview row plus one row per room type for every city
// that has listings. Intermediate directories are created automatically.
func (w *ReportWriter) WriteCSV(path string, views []models.CityView) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, v := range views {
		for _, row := range reportRows(v) {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("csv: write row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return f.Close()
}

// WriteXLSX writes one sheet per city with the same columns as WriteCSV.
func (w *ReportWriter) WriteXLSX(path string, views []models.CityView) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("xlsx: create output dir: %w", err)
	}

	wb := excelize.NewFile()
	defer wb.Close()

	first := true
	for _, v := range views {
		if !v.HasListings {
			continue
		}
		sheet := sheetName(v.City)
		if first {
			if err := wb.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("xlsx: rename sheet: %w", err)
			}
			first = false
		} else if _, err := wb.NewSheet(sheet); err != nil {
			return fmt.Errorf("xlsx: new sheet %q: %w", sheet, err)
		}

		if err := wb.SetSheetRow(sheet, "A1", &reportHeader); err != nil {
			return fmt.Errorf("xlsx: write header: %w", err)
		}
		for i, row := range xlsxRows(v) {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("xlsx: write row %d: %w", i+2, err)
			}
		}
	}

	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", path, err)
	}
	return nil
}

func reportRows(v models.CityView) [][]string {
	if !v.HasListings {
		return nil
	}
	rows := [][]string{{
		v.City, v.Currency, OverviewLabel,
		formatFloat(v.Overview.MinPrice), formatFloat(v.Overview.MaxPrice), formatFloat(v.Overview.AvgPrice),
		strconv.Itoa(len(v.Listings)),
	}}
	for _, s := range v.RoomStats {
		rows = append(rows, []string{
			v.City, v.Currency, s.RoomType,
			formatFloat(s.MinPrice), formatFloat(s.MaxPrice), formatFloat(s.AvgPrice),
			strconv.Itoa(s.Count),
		})
	}
	return rows
}

func xlsxRows(v models.CityView) [][]any {
	rows := [][]any{{
		v.City, v.Currency, OverviewLabel,
		cellFloat(v.Overview.MinPrice), cellFloat(v.Overview.MaxPrice), cellFloat(v.Overview.AvgPrice), len(v.Listings),
	}}
	for _, s := range v.RoomStats {
		rows = append(rows, []any{v.City, v.Currency, s.RoomType, s.MinPrice, s.MaxPrice, s.AvgPrice, s.Count})
	}
	return rows
}

// cellFloat leaves NaN cells empty; spreadsheets have no NaN.
func cellFloat(f float64) any {
	if math.IsNaN(f) {
		return nil
	}
	return f
}

// formatFloat formats a value with exactly 2 decimal places.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// sheetName trims a city name to Excel's 31 character limit and strips
// characters sheets may not contain.
func sheetName(city string) string {
	s := strings.NewReplacer(":", "", "\\", "", "/", "", "?", "", "*", "", "[", "", "]", "").Replace(city)
	if s == "" {
		s = "City"
	}
	if r := []rune(s); len(r) > 31 {
		s = string(r[:31])
	}
	return s
}
