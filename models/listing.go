package models

// RawListing holds a listings.csv row exactly as parsed, before any cleaning.
// Empty strings stand for missing values; Price is nil when the cell is empty
// or unparsable.
type RawListing struct {
	NeighbourhoodGroup string
	Neighbourhood      string
	Latitude           float64
	Longitude          float64
	RoomType           string
	Price              *float64
	MinimumNights      int
}

// Listing is the cleaned record handed to aggregation and presentation.
// Price is always present and NeighbourhoodGroup is set whenever
// Neighbourhood is.
type Listing struct {
	NeighbourhoodGroup string  `json:"neighbourhood_group"`
	Neighbourhood      string  `json:"neighbourhood"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	RoomType           string  `json:"room_type"`
	Price              float64 `json:"price"`
	MinimumNights      int     `json:"minimum_nights"`
}

// ListingColumns is the projection applied to listings.csv; other columns are ignored.
var ListingColumns = []string{
	"neighbourhood_group", "neighbourhood",
	"latitude", "longitude",
	"room_type", "price", "minimum_nights",
}

// Room types in the order the dashboard shows them.
const (
	RoomEntireHome = "Entire home/apt"
	RoomHotel      = "Hotel room"
	RoomPrivate    = "Private room"
	RoomShared     = "Shared room"
)

// DefaultRoomOrder is the canonical display order for room types.
var DefaultRoomOrder = []string{RoomEntireHome, RoomHotel, RoomPrivate, RoomShared}
