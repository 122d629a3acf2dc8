package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/smartcart/backend/internal/domain"
)

// rankOptions sorts candidate options in place by the fixed precedence:
//  1. full coverage before any partial option
//  2. fewer missing items
//  3. among full-coverage options, the fewest-stores strategy first
//  4. fewer distinct stores
//  5. lower total price
// Label is the final tie-break so the ranking is deterministic.
func rankOptions(options []domain.PurchaseOption) {
	sort.SliceStable(options, func(i, j int) bool {
		return optionLess(options[i], options[j])
	})
}

func optionLess(a, b domain.PurchaseOption) bool {
	if a.MissingCount != b.MissingCount {
		return a.MissingCount < b.MissingCount
	}
	if a.MissingCount == 0 {
		ra, rb := strategyRank(a.Strategy), strategyRank(b.Strategy)
		if ra != rb {
			return ra < rb
		}
	}
	if a.StoreCount != b.StoreCount {
		return a.StoreCount < b.StoreCount
	}
	if a.TotalPrice != b.TotalPrice {
		return a.TotalPrice < b.TotalPrice
	}
	return a.Label < b.Label
}

func strategyRank(s domain.Strategy) int {
	if s == domain.StrategyFewestStores {
		return 0
	}
	return 1
}

// partitionBudget splits ranked options into within-budget and over-budget
// sets. Both keep their relative order, which is the ranked order.
func partitionBudget(options []domain.PurchaseOption, budget float64) (within, exceeded []domain.PurchaseOption) {
	for _, opt := range options {
		if opt.TotalPrice <= budget {
			within = append(within, opt)
		} else {
			exceeded = append(exceeded, opt)
		}
	}
	return within, exceeded
}

// selectRecommendations picks the headline options from the ranked
// within-budget list: at most one full-coverage fewest-stores option and at
// most one full-coverage cheapest option, merged when they describe the same
// plan (same store set and total), then backfilled with the next-ranked
// remaining options up to the cap. The result stays in rank order.
func selectRecommendations(ranked []domain.PurchaseOption, limit int) []domain.PurchaseOption {
	if limit <= 0 || len(ranked) == 0 {
		return nil
	}

	picked := make([]domain.PurchaseOption, 0, limit)
	taken := make(map[string]bool)

	// Identity is the plan, not the strategy: a cheapest option that lands on
	// the same stores and total as the fewest-stores pick is the same advice
	// and must not be recommended twice.
	planKey := func(opt domain.PurchaseOption) string {
		return fmt.Sprintf("%s|%.6f|%d", opt.Label, opt.TotalPrice, opt.MissingCount)
	}
	take := func(opt domain.PurchaseOption) {
		key := planKey(opt)
		if taken[key] {
			return
		}
		taken[key] = true
		picked = append(picked, opt)
	}

	if fewest, ok := firstOption(ranked, domain.StrategyFewestStores); ok {
		take(fewest)
	}
	if cheapest, ok := firstOption(ranked, domain.StrategyCheapest); ok {
		take(cheapest)
	}

	for _, opt := range ranked {
		if len(picked) >= limit {
			break
		}
		take(opt)
	}
	if len(picked) > limit {
		picked = picked[:limit]
	}

	rankOptions(picked)
	return picked
}

// firstOption returns the first ranked full-coverage option of the given
// strategy.
func firstOption(ranked []domain.PurchaseOption, strategy domain.Strategy) (domain.PurchaseOption, bool) {
	for _, opt := range ranked {
		if opt.Strategy == strategy && opt.FullCoverage() {
			return opt, true
		}
	}
	return domain.PurchaseOption{}, false
}

// attachReasoning fills in the human-readable explanation on each option.
// This is presentation only; nothing downstream parses it.
func attachReasoning(options []domain.PurchaseOption, listLen int, budget float64) {
	for i := range options {
		options[i].Reasoning = reasoningFor(&options[i], listLen, budget)
	}
}

func reasoningFor(o *domain.PurchaseOption, listLen int, budget float64) string {
	var b strings.Builder

	switch {
	case o.FullCoverage() && o.StoreCount == 1:
		fmt.Fprintf(&b, "Everything on the list is available at %s for %.2f.", o.Stores[0], o.TotalPrice)
	case o.FullCoverage() && o.Strategy == domain.StrategyCheapest:
		fmt.Fprintf(&b, "Buying each item at its cheapest store (%s) totals %.2f across %d stores.",
			strings.Join(o.Stores, ", "), o.TotalPrice, o.StoreCount)
	case o.FullCoverage():
		fmt.Fprintf(&b, "Splitting the trip across %s covers the whole list for %.2f.",
			strings.Join(o.Stores, " and "), o.TotalPrice)
	default:
		fmt.Fprintf(&b, "%s covers %d of %d items for %.2f; %d unavailable there.",
			o.Label, len(o.Items), listLen, o.TotalPrice, o.MissingCount)
	}

	if budget > 0 {
		if o.TotalPrice <= budget {
			fmt.Fprintf(&b, " Fits the %.2f budget.", budget)
		} else {
			fmt.Fprintf(&b, " Exceeds the %.2f budget by %.2f.", budget, o.TotalPrice-budget)
		}
	}

	return b.String()
}

// buildSummary produces the headline line for the response.
func buildSummary(recs, exceeded []domain.PurchaseOption, listLen, unmatched int, budget float64) string {
	switch {
	case listLen == 0:
		return "Shopping list is empty; nothing to recommend."
	case len(recs) == 0 && len(exceeded) == 0:
		if unmatched == listLen {
			return "No prices found for any item on the list."
		}
		return "No purchase recommendations could be generated."
	case len(recs) == 0 && budget > 0:
		// Prefer citing the cheapest full-coverage price; fall back to the
		// cheapest partial when nothing covers the list.
		cheapest := -1.0
		for _, opt := range exceeded {
			if opt.FullCoverage() && (cheapest < 0 || opt.TotalPrice < cheapest) {
				cheapest = opt.TotalPrice
			}
		}
		if cheapest < 0 {
			for _, opt := range exceeded {
				if cheapest < 0 || opt.TotalPrice < cheapest {
					cheapest = opt.TotalPrice
				}
			}
		}
		return fmt.Sprintf("No option fits the budget of %.2f; the cheapest available option costs %.2f.", budget, cheapest)
	}

	top := recs[0]
	if top.FullCoverage() {
		return fmt.Sprintf("Best option: %s for %.2f.", top.Label, top.TotalPrice)
	}
	return fmt.Sprintf("Best option: %s for %.2f, covering %d of %d items.",
		top.Label, top.TotalPrice, len(top.Items), listLen)
}
