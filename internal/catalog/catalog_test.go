package catalog

import (
	"context"
	"math/rand"
	"testing"
)

func TestStaticSource_Load(t *testing.T) {
	src := NewStaticSource()
	cards, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cards) == 0 {
		t.Fatal("static catalog should not be empty")
	}
	seen := make(map[int]bool)
	for _, c := range cards {
		if seen[c.ID] {
			t.Errorf("duplicate card ID %d in catalog", c.ID)
		}
		seen[c.ID] = true
		if c.Name == "" {
			t.Errorf("card %d has empty name", c.ID)
		}
	}

	// Loads hand out independent copies.
	cards[0].Name = "mutated"
	again, _ := src.Load(context.Background())
	if again[0].Name == "mutated" {
		t.Error("Load returned a shared slice")
	}
}

func TestBuildDeck_DoublesAndTruncates(t *testing.T) {
	defs := []Card{
		{ID: 1, Name: "a"},
		{ID: 2, Name: "b"},
		{ID: 3, Name: "c"},
	}
	rng := rand.New(rand.NewSource(7))

	deck := BuildDeck(defs, rng, 4)
	if len(deck) != 4 {
		t.Fatalf("deck size %d, want 4", len(deck))
	}

	// Asking for more than the doubled set yields the whole doubled set.
	deck = BuildDeck(defs, rng, 30)
	if len(deck) != 6 {
		t.Fatalf("deck size %d, want 6", len(deck))
	}
	counts := make(map[int]int)
	for _, c := range deck {
		counts[c.ID]++
	}
	for id := 1; id <= 3; id++ {
		if counts[id] != 2 {
			t.Errorf("card %d appears %d times, want 2", id, counts[id])
		}
	}
}

func TestBuildDeck_ShuffleIsSeedDeterministic(t *testing.T) {
	defs := []Card{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	a := BuildDeck(defs, rand.New(rand.NewSource(42)), 10)
	b := BuildDeck(defs, rand.New(rand.NewSource(42)), 10)
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("same seed produced different decks at %d: %d vs %d", i, a[i].ID, b[i].ID)
		}
	}
}
