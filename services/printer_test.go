package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"airbnb-compare/models"
)

func TestPrinterUsesGermanNumbers(t *testing.T) {
	listings := []models.Listing{
		{NeighbourhoodGroup: "Mitte", RoomType: models.RoomEntireHome, Price: 1234.5},
		{NeighbourhoodGroup: "Nord", RoomType: models.RoomPrivate, Price: 1234567.89},
	}
	view := models.CityView{
		City: "berlin", Currency: "EUR", HasListings: true,
		Listings:      listings,
		Overview:      ComputeOverview(listings),
		RoomStats:     ComputeRoomTypeStats(listings),
		MostExpensive: MostExpensive(listings),
		Warnings:      []string{"No geo data available for berlin."},
	}

	var buf bytes.Buffer
	NewPrinter(&buf).Print([]models.CityView{view})
	out := buf.String()

	assert.Contains(t, out, "berlin")
	assert.Contains(t, out, "prices in EUR")
	assert.Contains(t, out, "1.234,50")
	assert.Contains(t, out, "1.234.567,89")
	assert.Contains(t, out, "(Nord)")
	assert.Contains(t, out, "No geo data available")
}

func TestPrinterNoSelection(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Print(nil)
	assert.Contains(t, buf.String(), "No city selected")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Entire h...", truncate("Entire home/apt", 11))
}
