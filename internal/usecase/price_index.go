package usecase

import (
	"sort"
	"strings"

	"github.com/smartcart/backend/internal/domain"
)

// brandKeyNone is the canonical key sentinel for offers without a brand.
// Absent brands (null, empty, whitespace-only) are normalized to the empty
// string as soon as an offer or list item enters the engine; the sentinel
// only ever appears inside index keys.
const brandKeyNone = "none"

// normalizeBrand collapses the ways an absent brand can be spelled into the
// empty string.
func normalizeBrand(brand string) string {
	return strings.TrimSpace(brand)
}

// itemKey builds the product+brand grouping key used by the index.
func itemKey(product, brand string) string {
	b := normalizeBrand(brand)
	if b == "" {
		b = brandKeyNone
	}
	return product + "|" + b
}

// priceIndex holds the per-request lookup structures built from the raw offer
// table. It is local to one request and never shared or cached.
type priceIndex struct {
	byStore   map[string][]domain.PriceOffer
	byItemKey map[string][]domain.PriceOffer
	byProduct map[string][]domain.PriceOffer
	stores    []string // store names, sorted for deterministic iteration
}

// buildPriceIndex groups offers by store and by product/brand key. Offers
// missing a product or store, or carrying a negative price, cannot be acted
// on and are dropped without error; the catalog is dirty in practice.
func buildPriceIndex(offers []domain.PriceOffer) *priceIndex {
	idx := &priceIndex{
		byStore:   make(map[string][]domain.PriceOffer),
		byItemKey: make(map[string][]domain.PriceOffer),
		byProduct: make(map[string][]domain.PriceOffer),
	}

	for _, offer := range offers {
		if offer.Product == "" || offer.Store == "" || offer.Price < 0 {
			continue
		}
		offer.Brand = normalizeBrand(offer.Brand)

		idx.byStore[offer.Store] = append(idx.byStore[offer.Store], offer)
		idx.byItemKey[itemKey(offer.Product, offer.Brand)] = append(idx.byItemKey[itemKey(offer.Product, offer.Brand)], offer)
		idx.byProduct[offer.Product] = append(idx.byProduct[offer.Product], offer)
	}

	idx.stores = make([]string, 0, len(idx.byStore))
	for store := range idx.byStore {
		idx.stores = append(idx.stores, store)
	}
	sort.Strings(idx.stores)

	return idx
}

// DistinctProducts returns the distinct product names in an offer table,
// sorted. Used by callers that resolve free-text list names before invoking
// the engine.
func DistinctProducts(offers []domain.PriceOffer) []string {
	return buildPriceIndex(offers).productNames()
}

// productNames returns the distinct catalog product names, sorted.
func (idx *priceIndex) productNames() []string {
	names := make([]string, 0, len(idx.byProduct))
	for name := range idx.byProduct {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// offersForItem returns the offers eligible for one list item across all
// stores: brand-filtered when the item names a brand, every brand otherwise.
func (idx *priceIndex) offersForItem(item domain.ListItem) []domain.PriceOffer {
	if normalizeBrand(item.Brand) != "" {
		return idx.byItemKey[itemKey(item.Name, item.Brand)]
	}
	return idx.byProduct[item.Name]
}

// matchOffer applies the shared matching rule to a set of offers: when the
// item names a brand, only that exact product+brand qualifies; otherwise any
// offer for the product qualifies and the cheapest wins. Ties on price break
// by store name, then brand, so the result never depends on input order.
func matchOffer(item domain.ListItem, offers []domain.PriceOffer) (domain.PriceOffer, bool) {
	wantBrand := normalizeBrand(item.Brand)

	var best domain.PriceOffer
	found := false
	for _, offer := range offers {
		if offer.Product != item.Name {
			continue
		}
		if wantBrand != "" && offer.Brand != wantBrand {
			continue
		}
		if !found || offerLess(offer, best) {
			best = offer
			found = true
		}
	}
	return best, found
}

// offerLess reports whether a is preferred over b: lower price first, then
// lexicographic store name, then lexicographic brand.
func offerLess(a, b domain.PriceOffer) bool {
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	if a.Store != b.Store {
		return a.Store < b.Store
	}
	return a.Brand < b.Brand
}
