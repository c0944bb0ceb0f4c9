package catalog

import (
	"context"
	"math/rand"
)

// CardType classifies a card definition.
type CardType string

const (
	TypeCreature CardType = "creature"
	TypeSpell    CardType = "spell"
	TypeArtifact CardType = "artifact"
)

// Card is a single immutable card definition. Definitions are loaded once
// at startup; game state references them by value.
type Card struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Text   string   `json:"text"`
	Type   CardType `json:"type"`
	Cost   int      `json:"cost"`
	Power  int      `json:"power"`
	Health int      `json:"health"`
}

// Source provides the card definition catalog.
type Source interface {
	Load(ctx context.Context) ([]Card, error)
}

// BuildDeck synthesizes a deck of size n from the catalog: each definition
// appears twice, the result is shuffled, and the front n cards are returned.
// If the doubled catalog holds fewer than n cards the whole shuffled set is
// returned.
func BuildDeck(defs []Card, rng *rand.Rand, n int) []Card {
	deck := make([]Card, 0, len(defs)*2)
	for _, def := range defs {
		deck = append(deck, def, def)
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	if n < len(deck) {
		deck = deck[:n]
	}
	return deck
}
