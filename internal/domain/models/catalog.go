package models

// TourPrice is the catalog data pricing needs from a tour.
type TourPrice struct {
	ID        string
	BasePrice Money
}

// PackagePrice is the catalog data pricing needs from a tour package.
type PackagePrice struct {
	ID            string
	TourID        string
	PriceModifier Money
}
