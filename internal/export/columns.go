package export

import (
	"strconv"

	"github.com/onnise/beyond-ads-scraper/internal/entity"
)

// Column maps a listing field to a spreadsheet column.
type Column struct {
	Header string
	Value  func(entity.Listing) string
	// Link marks columns rendered as hyperlinks in XLSX output.
	Link bool
}

// BasicColumns is the six-column layout of the standard export.
var BasicColumns = []Column{
	{Header: "Name", Value: func(l entity.Listing) string { return l.Name }},
	{Header: "Phone", Value: func(l entity.Listing) string { return l.Phone }},
	{Header: "Address", Value: func(l entity.Listing) string { return l.Address }},
	{Header: "Website", Value: func(l entity.Listing) string { return l.Website }, Link: true},
	{Header: "Area", Value: func(l entity.Listing) string { return l.Area }},
	{Header: "Industry", Value: func(l entity.Listing) string { return l.Industry }},
}

// DetailedColumns appends every collected field to BasicColumns.
var DetailedColumns = append(append([]Column{}, BasicColumns...),
	Column{Header: "Instagram", Value: func(l entity.Listing) string { return l.Instagram }, Link: true},
	Column{Header: "Facebook", Value: func(l entity.Listing) string { return l.Facebook }, Link: true},
	Column{Header: "Phone Type", Value: func(l entity.Listing) string { return string(l.PhoneType) }},
	Column{Header: "Phone (Local)", Value: func(l entity.Listing) string { return l.PhoneLocal }},
	Column{Header: "Phone (Raw)", Value: func(l entity.Listing) string { return l.PhoneRaw }},
	Column{Header: "Reviews Count", Value: func(l entity.Listing) string { return optionalInt(l.ReviewsCount) }},
	Column{Header: "Reviews Average", Value: func(l entity.Listing) string { return optionalFloat(l.ReviewsAverage) }},
	Column{Header: "In-Store Shopping", Value: func(l entity.Listing) string { return l.StoreShopping }},
	Column{Header: "In-Store Pickup", Value: func(l entity.Listing) string { return l.InStorePickup }},
	Column{Header: "Delivery", Value: func(l entity.Listing) string { return l.StoreDelivery }},
	Column{Header: "Place Type", Value: func(l entity.Listing) string { return l.PlaceType }},
	Column{Header: "Opens At", Value: func(l entity.Listing) string { return l.OpensAt }},
	Column{Header: "Introduction", Value: func(l entity.Listing) string { return l.Introduction }},
	Column{Header: "Maps URL", Value: func(l entity.Listing) string { return l.MapsURL }, Link: true},
	Column{Header: "Score", Value: func(l entity.Listing) string { return strconv.Itoa(l.Score) }},
)

// Layout picks the column set by name. Anything but "full" is the basic layout.
func Layout(name string) []Column {
	if name == "full" {
		return DetailedColumns
	}
	return BasicColumns
}

func headers(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header
	}
	return out
}

func record(l entity.Listing, cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Value(l)
	}
	return out
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
