package catalog

// Business categories (closed enum)
const (
	CategoryAccommodation = "accommodation"
	CategoryHotel         = "hotel"
	CategoryRestaurant    = "restaurant"
	CategoryPharmacy      = "pharmacy"
	CategoryGasStation    = "gas_station"
)

var categories = map[string]bool{
	CategoryAccommodation: true,
	CategoryHotel:         true,
	CategoryRestaurant:    true,
	CategoryPharmacy:      true,
	CategoryGasStation:    true,
}

func IsValidCategory(c string) bool {
	return categories[c]
}
