package domain

// PriceOffer represents one observed price for a product at a store.
// Offers are read-only input; many offers may exist for the same product
// across stores and brands.
type PriceOffer struct {
	Product string  `json:"product"`
	Brand   string  `json:"brand,omitempty"`
	Price   float64 `json:"price"`
	Unit    string  `json:"unit,omitempty"` // presentation label, e.g. "1kg"
	Store   string  `json:"store"`
}

// ListItem is one entry in the shopper's list. When Brand is set, only offers
// of that brand are eligible; otherwise any brand matches and the cheapest
// offer wins.
type ListItem struct {
	Name  string `json:"name" binding:"required"`
	Brand string `json:"brand,omitempty"`
}

// ItemPriceComparison holds all offers matching one list item, sorted
// ascending by price.
type ItemPriceComparison struct {
	Item            ListItem     `json:"item"`
	AvailablePrices []PriceOffer `json:"availablePrices"`
	HasPrices       bool         `json:"hasPrices"`
}
