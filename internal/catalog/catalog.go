package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/durakfree/durak-server-go/internal/game"
)

// Catalog is the static data provider: the immutable card set and the
// faction-id to name lookup. The engine treats both as read-only inputs;
// accessors hand out copies.
type Catalog struct {
	cards        []game.Card
	factionNames map[int]string
}

// New builds a catalog from explicit data, validating referential
// integrity between cards and factions.
func New(cards []game.Card, factionNames map[int]string) (*Catalog, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("catalog: no cards")
	}
	seen := make(map[int]bool, len(cards))
	for _, c := range cards {
		if seen[c.ID] {
			return nil, fmt.Errorf("catalog: duplicate card id %d", c.ID)
		}
		seen[c.ID] = true
		if c.Name == "" {
			return nil, fmt.Errorf("catalog: card %d has no name", c.ID)
		}
		if len(c.Factions) == 0 {
			return nil, fmt.Errorf("catalog: card %d (%s) has no factions", c.ID, c.Name)
		}
		for _, f := range c.Factions {
			if _, ok := factionNames[f]; !ok {
				return nil, fmt.Errorf("catalog: card %d (%s) references unknown faction %d", c.ID, c.Name, f)
			}
		}
	}
	names := make(map[int]string, len(factionNames))
	for id, name := range factionNames {
		names[id] = name
	}
	return &Catalog{
		cards:        append([]game.Card(nil), cards...),
		factionNames: names,
	}, nil
}

// Default returns the built-in card set.
func Default() *Catalog {
	c, err := New(defaultCards, defaultFactionNames)
	if err != nil {
		// The built-in data is validated by tests; reaching this is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return c
}

// catalogFile is the on-disk JSON shape for LoadFile.
type catalogFile struct {
	Factions []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"factions"`
	Cards []game.Card `json:"cards"`
}

// LoadFile reads a card set override from a JSON file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	names := make(map[int]string, len(file.Factions))
	for _, f := range file.Factions {
		names[f.ID] = f.Name
	}
	return New(file.Cards, names)
}

// Cards returns a copy of the full card set.
func (c *Catalog) Cards() []game.Card {
	return append([]game.Card(nil), c.cards...)
}

// Card looks up a card by id.
func (c *Catalog) Card(id int) (game.Card, bool) {
	for _, card := range c.cards {
		if card.ID == id {
			return card, true
		}
	}
	return game.Card{}, false
}

// FactionName resolves a faction id to its display name.
func (c *Catalog) FactionName(id int) string {
	if name, ok := c.factionNames[id]; ok {
		return name
	}
	return fmt.Sprintf("faction %d", id)
}

// FactionIDs returns all known faction ids in ascending order.
func (c *Catalog) FactionIDs() []int {
	ids := make([]int, 0, len(c.factionNames))
	for id := range c.factionNames {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
