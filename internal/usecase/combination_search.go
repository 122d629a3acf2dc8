package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/smartcart/backend/internal/domain"
)

// cheapestCombination picks each list item's globally cheapest offer,
// ignoring store boundaries, and reports the store set that entails. It is
// emitted even when some items have no offer anywhere, but not when nothing
// matched at all.
func cheapestCombination(idx *priceIndex, list []domain.ListItem) *domain.PurchaseOption {
	var selections []domain.OfferSelection
	missing := 0

	for _, item := range list {
		offer, ok := matchOffer(item, idx.offersForItem(item))
		if !ok {
			missing++
			continue
		}
		selections = append(selections, selectionFromOffer(item, offer))
	}

	if len(selections) == 0 {
		return nil
	}
	opt := combinationOption(selections, missing, domain.StrategyCheapest)
	return &opt
}

// fewestStoresCombinations searches bounded store combinations for full list
// coverage. Candidate stores are the coverage-ranked prefix from
// scoreAllStores: the top pairStoreLimit stores for pairs, the top
// tripleStoreLimit for triples. The pair search is exhaustive and keeps every
// full-coverage pair; triples are only tried when no pair covers, and the
// search stops at the first covering triple. Because candidates are iterated
// in ranked order, "first" is deterministic.
func fewestStoresCombinations(
	ctx context.Context,
	idx *priceIndex,
	list []domain.ListItem,
	scores []storeScore,
	pairStoreLimit, tripleStoreLimit int,
) ([]domain.PurchaseOption, error) {
	var options []domain.PurchaseOption
	seen := make(map[string]bool) // dedup by store-set label

	pairLimit := min(pairStoreLimit, len(scores))
	for i := 0; i < pairLimit; i++ {
		for j := i + 1; j < pairLimit; j++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			opt, ok := combineStores(idx, list, scores[i].store, scores[j].store)
			if !ok || seen[opt.Label] {
				continue
			}
			seen[opt.Label] = true
			options = append(options, opt)
		}
	}
	if len(options) > 0 {
		return options, nil
	}

	tripleLimit := min(tripleStoreLimit, len(scores))
	for i := 0; i < tripleLimit; i++ {
		for j := i + 1; j < tripleLimit; j++ {
			for k := j + 1; k < tripleLimit; k++ {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				default:
				}

				if opt, ok := combineStores(idx, list, scores[i].store, scores[j].store, scores[k].store); ok {
					return []domain.PurchaseOption{opt}, nil
				}
			}
		}
	}

	return nil, nil
}

// combineStores fulfills the list from the union of the given stores, taking
// the cheapest match per item across them. It only succeeds when the union
// covers every item.
func combineStores(idx *priceIndex, list []domain.ListItem, stores ...string) (domain.PurchaseOption, bool) {
	selections := make([]domain.OfferSelection, 0, len(list))

	for _, item := range list {
		var best domain.PriceOffer
		found := false
		for _, store := range stores {
			offer, ok := matchOffer(item, idx.byStore[store])
			if !ok {
				continue
			}
			if !found || offerLess(offer, best) {
				best = offer
				found = true
			}
		}
		if !found {
			return domain.PurchaseOption{}, false
		}
		selections = append(selections, selectionFromOffer(item, best))
	}

	return combinationOption(selections, 0, domain.StrategyFewestStores), true
}

// combinationOption assembles a multi-store option from chosen selections.
// Stores and label reflect the stores actually used, not the stores searched:
// a pair where one store wins every item yields a one-store set.
func combinationOption(selections []domain.OfferSelection, missing int, strategy domain.Strategy) domain.PurchaseOption {
	distinct := make(map[string]bool)
	total := 0.0
	for _, sel := range selections {
		distinct[sel.Store] = true
		total += sel.Price
	}

	stores := make([]string, 0, len(distinct))
	for store := range distinct {
		stores = append(stores, store)
	}
	sort.Strings(stores)

	return domain.PurchaseOption{
		Label:         strings.Join(stores, " + "),
		Stores:        stores,
		Items:         selections,
		TotalPrice:    total,
		MissingCount:  missing,
		IsCombination: true,
		Strategy:      strategy,
		StoreCount:    len(stores),
	}
}
