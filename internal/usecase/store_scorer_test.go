package usecase

import (
	"testing"

	"github.com/smartcart/backend/internal/domain"
)

func twoStoreIndex() *priceIndex {
	return buildPriceIndex([]domain.PriceOffer{
		{Product: "milk", Price: 2.0, Store: "A"},
		{Product: "bread", Price: 1.5, Store: "A"},
		{Product: "milk", Price: 1.8, Store: "B"},
	})
}

func TestScoreAllStores(t *testing.T) {
	list := []domain.ListItem{{Name: "milk"}, {Name: "bread"}}
	scores := scoreAllStores(twoStoreIndex(), list)

	if len(scores) != 2 {
		t.Fatalf("got %d scores, want 2", len(scores))
	}

	// A covers both items, B only milk; A must rank first.
	if scores[0].store != "A" || scores[0].covered != 2 {
		t.Errorf("scores[0] = %s covered %d, want A covered 2", scores[0].store, scores[0].covered)
	}
	if scores[0].total != 3.5 {
		t.Errorf("scores[0].total = %v, want 3.5", scores[0].total)
	}
	if scores[1].store != "B" || scores[1].covered != 1 {
		t.Errorf("scores[1] = %s covered %d, want B covered 1", scores[1].store, scores[1].covered)
	}
}

func TestScoreAllStores_RankingTieBreaks(t *testing.T) {
	idx := buildPriceIndex([]domain.PriceOffer{
		{Product: "milk", Price: 3.0, Store: "B"},
		{Product: "milk", Price: 2.0, Store: "C"},
		{Product: "milk", Price: 2.0, Store: "A"},
	})
	scores := scoreAllStores(idx, []domain.ListItem{{Name: "milk"}})

	// Equal coverage: cheaper total first, then store name.
	want := []string{"A", "C", "B"}
	for i, sc := range scores {
		if sc.store != want[i] {
			t.Fatalf("ranking = %v..., want %v", sc.store, want)
		}
	}
}

func TestSingleStoreOptions(t *testing.T) {
	t.Run("emits one full-coverage option per covering store", func(t *testing.T) {
		idx := buildPriceIndex([]domain.PriceOffer{
			{Product: "milk", Price: 2.0, Store: "A"},
			{Product: "bread", Price: 1.0, Store: "A"},
			{Product: "milk", Price: 1.5, Store: "B"},
			{Product: "bread", Price: 2.0, Store: "B"},
		})
		list := []domain.ListItem{{Name: "milk"}, {Name: "bread"}}

		options := singleStoreOptions(scoreAllStores(idx, list), len(list))

		if len(options) != 2 {
			t.Fatalf("got %d options, want 2", len(options))
		}
		for _, opt := range options {
			if opt.MissingCount != 0 {
				t.Errorf("option %s has missingCount %d, want 0", opt.Label, opt.MissingCount)
			}
			if opt.Strategy != domain.StrategySingle || opt.StoreCount != 1 || opt.IsCombination {
				t.Errorf("option %s is not a single-store option: %+v", opt.Label, opt)
			}
		}
	})

	t.Run("falls back to the single best partial store", func(t *testing.T) {
		list := []domain.ListItem{{Name: "milk"}, {Name: "bread"}, {Name: "eggs"}}
		options := singleStoreOptions(scoreAllStores(twoStoreIndex(), list), len(list))

		if len(options) != 1 {
			t.Fatalf("got %d options, want exactly 1 partial fallback", len(options))
		}
		opt := options[0]
		if opt.Label != "A" {
			t.Errorf("fallback store = %s, want A (covers 2 of 3)", opt.Label)
		}
		if opt.MissingCount != 1 {
			t.Errorf("missingCount = %d, want 1", opt.MissingCount)
		}
	})

	t.Run("partial fallback ties break by lower total", func(t *testing.T) {
		idx := buildPriceIndex([]domain.PriceOffer{
			{Product: "milk", Price: 2.0, Store: "A"},
			{Product: "milk", Price: 1.5, Store: "B"},
		})
		list := []domain.ListItem{{Name: "milk"}, {Name: "eggs"}}

		options := singleStoreOptions(scoreAllStores(idx, list), len(list))
		if len(options) != 1 || options[0].Label != "B" {
			t.Fatalf("fallback = %v, want single option for B", options)
		}
	})

	t.Run("emits nothing when no store covers anything", func(t *testing.T) {
		list := []domain.ListItem{{Name: "caviar"}}
		options := singleStoreOptions(scoreAllStores(twoStoreIndex(), list), len(list))
		if len(options) != 0 {
			t.Errorf("got %d options, want 0", len(options))
		}
	})
}
