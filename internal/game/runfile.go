package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunFile represents the top-level YAML structure of a run file.
type RunFile struct {
	Runs []RunEntry `yaml:"runs"`
}

// RunEntry is one named run: the starting player, deck and encounters.
type RunEntry struct {
	Name       string      `yaml:"name"`
	HP         int         `yaml:"hp"`
	MaxHP      int         `yaml:"max_hp"`
	Energy     int         `yaml:"energy"`
	Deck       []CardEntry `yaml:"deck"`
	Encounters [][]string  `yaml:"encounters"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	Name     string `yaml:"name"`
	Count    int    `yaml:"count"` // 0 means 1
	Upgrades int    `yaml:"upgrades"`
}

// ParseRunFile parses YAML run data into a map of run name to config.
func ParseRunFile(data []byte, cat Catalog) (map[string]RunConfig, error) {
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse run YAML: %w", err)
	}
	runs := make(map[string]RunConfig, len(rf.Runs))
	for _, entry := range rf.Runs {
		cfg, err := entry.Config(cat)
		if err != nil {
			return nil, fmt.Errorf("run %q: %w", entry.Name, err)
		}
		runs[entry.Name] = cfg
	}
	return runs, nil
}

// LoadRun reads a run file and returns the named run. An empty name picks
// the first run in the file.
func LoadRun(path, name string, cat Catalog) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, err
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return RunConfig{}, fmt.Errorf("parse run YAML: %w", err)
	}
	if len(rf.Runs) == 0 {
		return RunConfig{}, fmt.Errorf("run file %s has no runs", path)
	}
	for _, entry := range rf.Runs {
		if name == "" || entry.Name == name {
			return entry.Config(cat)
		}
	}
	return RunConfig{}, fmt.Errorf("run %q not found in %s", name, path)
}

// Config resolves card names against cat and builds a RunConfig.
func (e RunEntry) Config(cat Catalog) (RunConfig, error) {
	if cat == nil {
		cat = DefaultCatalog()
	}
	var deck []Card
	for _, ce := range e.Deck {
		id, ok := cat.Lookup(ce.Name)
		if !ok {
			return RunConfig{}, unsupported("card", ce.Name)
		}
		c := NewCard(id)
		c.Upgrades = ce.Upgrades
		n := ce.Count
		if n == 0 {
			n = 1
		}
		for range n {
			deck = append(deck, c)
		}
	}
	return RunConfig{
		HP:         e.HP,
		MaxHP:      e.MaxHP,
		BaseEnergy: e.Energy,
		Deck:       deck,
		Encounters: e.Encounters,
		Catalog:    cat,
	}, nil
}

// StarterDeck returns the standard opening deck.
func StarterDeck() []Card {
	var deck []Card
	for range 5 {
		deck = append(deck, NewCard(CardStrike))
	}
	for range 4 {
		deck = append(deck, NewCard(CardDefend))
	}
	return append(deck, NewCard(CardBash))
}

// DefaultRunConfig is an 80 HP starter run through a short act of fights.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		HP:         80,
		MaxHP:      80,
		BaseEnergy: BaseEnergy,
		Deck:       StarterDeck(),
		Encounters: [][]string{
			{"Cultist"},
			{"Jaw Worm"},
			{"Red Louse", "Green Louse"},
			{"Acid Slime (M)", "Spike Slime (M)"},
			{"Fungi Beast", "Fungi Beast"},
			{"Acid Slime (L)"},
			{"Gremlin Nob"},
		},
	}
}
