package catalog

import "context"

// staticSource serves the built-in card set. It is used whenever no
// database is configured, and by tests.
type staticSource struct{}

// NewStaticSource returns a Source backed by the compiled-in card set.
func NewStaticSource() Source {
	return staticSource{}
}

func (staticSource) Load(_ context.Context) ([]Card, error) {
	// Copy so callers can't mutate the shared table.
	cards := make([]Card, len(defaultCards))
	copy(cards, defaultCards)
	return cards, nil
}

var defaultCards = []Card{
	{ID: 1, Name: "Ember Imp", Text: "A small fiend with a short fuse.", Type: TypeCreature, Cost: 1, Power: 2, Health: 1},
	{ID: 2, Name: "Stone Sentinel", Text: "It has stood guard longer than the walls it guards.", Type: TypeCreature, Cost: 2, Power: 1, Health: 4},
	{ID: 3, Name: "River Adept", Text: "Draws strength from moving water.", Type: TypeCreature, Cost: 2, Power: 2, Health: 2},
	{ID: 4, Name: "Gale Harpy", Text: "Strikes before the wind arrives.", Type: TypeCreature, Cost: 3, Power: 3, Health: 2},
	{ID: 5, Name: "Barrow Knight", Text: "Oathbound beyond death.", Type: TypeCreature, Cost: 4, Power: 3, Health: 4},
	{ID: 6, Name: "Duskwood Colossus", Text: "The forest walks when it wakes.", Type: TypeCreature, Cost: 6, Power: 6, Health: 6},
	{ID: 7, Name: "Spark Bolt", Text: "Deal 2 damage to any target.", Type: TypeSpell, Cost: 1, Power: 2},
	{ID: 8, Name: "Mend Flesh", Text: "Restore 3 health to a creature.", Type: TypeSpell, Cost: 2, Power: 3},
	{ID: 9, Name: "Sudden Squall", Text: "Return a creature to its owner's hand.", Type: TypeSpell, Cost: 2},
	{ID: 10, Name: "Pyre Wave", Text: "Deal 1 damage to every enemy creature.", Type: TypeSpell, Cost: 3, Power: 1},
	{ID: 11, Name: "Hollow Bargain", Text: "Discard a card, then draw two.", Type: TypeSpell, Cost: 3},
	{ID: 12, Name: "Warding Idol", Text: "Your creatures take 1 less damage.", Type: TypeArtifact, Cost: 2},
	{ID: 13, Name: "Whetstone Altar", Text: "Your creatures get +1 power.", Type: TypeArtifact, Cost: 3, Power: 1},
	{ID: 14, Name: "Hourglass of Echoes", Text: "At the start of your turn, draw an extra card.", Type: TypeArtifact, Cost: 5},
	{ID: 15, Name: "Sealed Reliquary", Text: "Opposing spells cost 1 more.", Type: TypeArtifact, Cost: 4},
}
