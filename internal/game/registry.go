package game

import "fmt"

var defaultLibrary = newCardLibrary(defaultDefs)

// DefaultCatalog returns the built-in card library. The library is immutable
// and safe to share between states and goroutines.
func DefaultCatalog() *CardLibrary {
	return defaultLibrary
}

// LookupCard looks up a card by name in the default library.
// Panics if the card is not found.
func LookupCard(name string) Card {
	id, ok := defaultLibrary.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("card not found in registry: %q", name))
	}
	return NewCard(id)
}

// ResolveCards converts names to cards using cat. Unknown names are
// reported as unsupported content.
func ResolveCards(cat Catalog, names ...string) ([]Card, error) {
	cards := make([]Card, 0, len(names))
	for _, name := range names {
		id, ok := cat.Lookup(name)
		if !ok {
			return nil, unsupported("card", name)
		}
		cards = append(cards, NewCard(id))
	}
	return cards, nil
}
