package domain

// Strategy identifies how a purchase option was built.
type Strategy string

const (
	// StrategySingle covers the list from one store.
	StrategySingle Strategy = "single"
	// StrategyCheapest picks each item's global minimum price regardless of store.
	StrategyCheapest Strategy = "cheapest"
	// StrategyFewestStores finds the smallest store set with full coverage.
	StrategyFewestStores Strategy = "fewest-stores"
)

// OfferSelection is one covered list item inside a purchase option: the offer
// chosen for that item.
type OfferSelection struct {
	Item  string  `json:"item"`
	Price float64 `json:"price"`
	Brand string  `json:"brand,omitempty"`
	Store string  `json:"store"`
}

// PurchaseOption is a candidate way to fulfill all or part of the list.
//
// Invariants: len(Items)+MissingCount equals the list length, TotalPrice is
// the sum of item prices, and StoreCount equals the number of distinct stores
// referenced in Items.
type PurchaseOption struct {
	Label         string           `json:"label"`
	Stores        []string         `json:"stores"` // distinct store names, sorted
	Items         []OfferSelection `json:"items"`
	TotalPrice    float64          `json:"totalPrice"`
	MissingCount  int              `json:"missingCount"`
	IsCombination bool             `json:"isCombination"`
	Strategy      Strategy         `json:"strategy"`
	StoreCount    int              `json:"storeCount"`
	Reasoning     string           `json:"reasoning,omitempty"`
}

// FullCoverage reports whether the option covers every list item.
func (o *PurchaseOption) FullCoverage() bool {
	return o.MissingCount == 0
}

// RecommendationRequest is the input to the optimization engine. List must
// be present (an empty list is valid and yields an empty response; an absent
// one is a validation failure). Offers may be omitted over HTTP when a
// catalog feed is configured; the engine itself always requires both slices
// to be present.
type RecommendationRequest struct {
	List      []ListItem   `json:"list"`
	Offers    []PriceOffer `json:"offers"`
	AllStores []string     `json:"allStores,omitempty"` // informational only
	Budget    float64      `json:"budget,omitempty"`
}

// RecommendationResponse is the ranked result of one optimization run.
type RecommendationResponse struct {
	AllPrices          []ItemPriceComparison `json:"allPrices"`
	ItemsWithoutPrices []ListItem            `json:"itemsWithoutPrices"`
	Recommendations    []PurchaseOption      `json:"recommendations"`
	BudgetExceeded     []PurchaseOption      `json:"budgetExceeded,omitempty"`
	Summary            string                `json:"summary"`
}
