package usecase

import (
	"sort"

	"github.com/smartcart/backend/internal/domain"
)

// storeScore captures how well one store covers the list on its own.
type storeScore struct {
	store      string
	selections []domain.OfferSelection
	covered    int
	total      float64
}

// scoreAllStores applies the matching rule to every store independently and
// ranks the results by coverage (descending), then total price, then store
// name. The ranking doubles as the candidate order for the combination
// search.
func scoreAllStores(idx *priceIndex, list []domain.ListItem) []storeScore {
	scores := make([]storeScore, 0, len(idx.stores))

	for _, store := range idx.stores {
		offers := idx.byStore[store]
		sc := storeScore{store: store}
		for _, item := range list {
			offer, ok := matchOffer(item, offers)
			if !ok {
				continue
			}
			sc.selections = append(sc.selections, selectionFromOffer(item, offer))
			sc.covered++
			sc.total += offer.Price
		}
		scores = append(scores, sc)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.covered != b.covered {
			return a.covered > b.covered
		}
		if a.total != b.total {
			return a.total < b.total
		}
		return a.store < b.store
	})

	return scores
}

// singleStoreOptions emits one full-coverage option per store that can supply
// the whole list. When no store can, it falls back to the single best partial
// store: highest coverage, ties broken by lower total. Stores covering
// nothing are never emitted.
func singleStoreOptions(scores []storeScore, listLen int) []domain.PurchaseOption {
	var full []domain.PurchaseOption
	for _, sc := range scores {
		if sc.covered == listLen {
			full = append(full, optionFromScore(sc, listLen))
		}
	}
	if len(full) > 0 {
		return full
	}

	// scores are already ranked best-first
	for _, sc := range scores {
		if sc.covered > 0 {
			return []domain.PurchaseOption{optionFromScore(sc, listLen)}
		}
	}
	return nil
}

func optionFromScore(sc storeScore, listLen int) domain.PurchaseOption {
	return domain.PurchaseOption{
		Label:        sc.store,
		Stores:       []string{sc.store},
		Items:        sc.selections,
		TotalPrice:   sc.total,
		MissingCount: listLen - sc.covered,
		Strategy:     domain.StrategySingle,
		StoreCount:   1,
	}
}

func selectionFromOffer(item domain.ListItem, offer domain.PriceOffer) domain.OfferSelection {
	return domain.OfferSelection{
		Item:  item.Name,
		Price: offer.Price,
		Brand: offer.Brand,
		Store: offer.Store,
	}
}
