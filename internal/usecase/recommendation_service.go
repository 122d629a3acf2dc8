package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/smartcart/backend/internal/domain"
)

// Default bounds for the combination search. The top-K cutoffs keep the
// search polynomial (K^2 pairs, K^3 triples) at the cost of ignoring
// low-coverage stores; they are configuration, not correctness constants.
const (
	defaultPairStoreLimit     = 10
	defaultTripleStoreLimit   = 8
	defaultMaxRecommendations = 2
)

// RecommendationConfig holds configuration for the recommendation service
type RecommendationConfig struct {
	PairStoreLimit     int
	TripleStoreLimit   int
	MaxRecommendations int
	EnableDebugLogging bool
}

// RecommendationService computes multi-store purchase recommendations for a
// shopping list against a flat offer table. The service holds no mutable
// state and is safe for concurrent use; every request builds its own index.
type RecommendationService struct {
	pairStoreLimit     int
	tripleStoreLimit   int
	maxRecommendations int
	enableDebugLogging bool
}

// NewRecommendationService creates a new recommendation service with the
// given configuration, falling back to defaults for unset values.
func NewRecommendationService(config RecommendationConfig) *RecommendationService {
	pairLimit := config.PairStoreLimit
	if pairLimit < 2 {
		pairLimit = defaultPairStoreLimit
	}
	tripleLimit := config.TripleStoreLimit
	if tripleLimit < 3 {
		tripleLimit = defaultTripleStoreLimit
	}
	maxRecs := config.MaxRecommendations
	if maxRecs <= 0 {
		maxRecs = defaultMaxRecommendations
	}

	return &RecommendationService{
		pairStoreLimit:     pairLimit,
		tripleStoreLimit:   tripleLimit,
		maxRecommendations: maxRecs,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Recommend runs the full pipeline: index the offer table, score every store,
// build the per-strategy candidate options, rank them, apply the budget, and
// pick the headline recommendations.
//
// Dirty offer records are skipped rather than rejected; the call fails only
// when list or offers are structurally absent.
func (s *RecommendationService) Recommend(
	ctx context.Context,
	request *domain.RecommendationRequest,
) (*domain.RecommendationResponse, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}
	if request.List == nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, domain.ErrMissingList)
	}
	if request.Offers == nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, domain.ErrMissingOffers)
	}

	list := sanitizeList(request.List)
	idx := buildPriceIndex(request.Offers)
	budget := request.Budget
	if budget < 0 {
		budget = 0
	}

	if s.enableDebugLogging {
		log.Printf("[RECOMMEND] %d list items, %d stores, budget=%.2f",
			len(list), len(idx.stores), budget)
	}

	comparisons, withoutPrices := compareItemPrices(idx, list)
	response := &domain.RecommendationResponse{
		AllPrices:          comparisons,
		ItemsWithoutPrices: withoutPrices,
		Recommendations:    []domain.PurchaseOption{},
	}

	if len(list) == 0 {
		response.Summary = buildSummary(nil, nil, 0, 0, budget)
		return response, nil
	}

	scores := scoreAllStores(idx, list)
	candidates := singleStoreOptions(scores, len(list))

	if opt := cheapestCombination(idx, list); opt != nil {
		candidates = append(candidates, *opt)
	}

	// The fewest-stores search only runs when no single store covers the
	// whole list: one covering store already is the fewest possible.
	singleFullCoverage := len(scores) > 0 && scores[0].covered == len(list)
	if !singleFullCoverage {
		combos, err := fewestStoresCombinations(ctx, idx, list, scores, s.pairStoreLimit, s.tripleStoreLimit)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, combos...)
	}

	rankOptions(candidates)

	within := candidates
	var exceeded []domain.PurchaseOption
	if budget > 0 {
		within, exceeded = partitionBudget(candidates, budget)
	}

	recommendations := selectRecommendations(within, s.maxRecommendations)
	attachReasoning(recommendations, len(list), budget)
	attachReasoning(exceeded, len(list), budget)

	if s.enableDebugLogging {
		log.Printf("[RECOMMEND] %d candidates, %d within budget, %d recommended",
			len(candidates), len(within), len(recommendations))
	}

	response.Recommendations = recommendations
	response.BudgetExceeded = exceeded
	response.Summary = buildSummary(recommendations, exceeded, len(list), len(withoutPrices), budget)
	return response, nil
}

// sanitizeList normalizes brands and drops entries without a name. The caller
// is supposed to send non-empty names, but the engine tolerates dirty input
// the same way it tolerates dirty offers.
func sanitizeList(list []domain.ListItem) []domain.ListItem {
	cleaned := make([]domain.ListItem, 0, len(list))
	for _, item := range list {
		if item.Name == "" {
			continue
		}
		item.Brand = normalizeBrand(item.Brand)
		cleaned = append(cleaned, item)
	}
	return cleaned
}

// compareItemPrices builds the per-item price comparison (all matching
// offers, ascending by price) and the list of items with no offer anywhere.
func compareItemPrices(idx *priceIndex, list []domain.ListItem) ([]domain.ItemPriceComparison, []domain.ListItem) {
	comparisons := make([]domain.ItemPriceComparison, 0, len(list))
	withoutPrices := []domain.ListItem{}

	for _, item := range list {
		offers := idx.offersForItem(item)
		matching := make([]domain.PriceOffer, 0, len(offers))
		for _, offer := range offers {
			if _, ok := matchOffer(item, []domain.PriceOffer{offer}); ok {
				matching = append(matching, offer)
			}
		}
		sort.SliceStable(matching, func(i, j int) bool {
			return offerLess(matching[i], matching[j])
		})

		comparisons = append(comparisons, domain.ItemPriceComparison{
			Item:            item,
			AvailablePrices: matching,
			HasPrices:       len(matching) > 0,
		})
		if len(matching) == 0 {
			withoutPrices = append(withoutPrices, item)
		}
	}

	return comparisons, withoutPrices
}
