package game

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

//go:embed data/species.yaml
var speciesYAML []byte

// SpeciesFile is the top-level YAML structure of a species table.
type SpeciesFile struct {
	Species []*Species `yaml:"species"`
}

// Species is the data definition of one enemy type.
type Species struct {
	Name      string      `yaml:"name"`
	HP        [2]int      `yaml:"hp"`
	Decider   string      `yaml:"decider"`
	SplitInto string      `yaml:"split_into"`
	Bite      [2]int      `yaml:"bite"`
	Powers    []PowerSpec `yaml:"powers"`
	Opening   Transition  `yaml:"opening"`
	States    []AIState   `yaml:"states"`

	decide Decider
}

// PowerSpec is a status an enemy starts the fight with, rolled in a range.
type PowerSpec struct {
	Status Status `yaml:"status"`
	Amount [2]int `yaml:"amount"`
}

func (sp *Species) stateID(name string) (uint32, bool) {
	for i := range sp.States {
		if sp.States[i].Name == name {
			return uint32(i), true
		}
	}
	return 0, false
}

// StateName returns the name of a state id, for display and tests.
func (sp *Species) StateName(id uint32) string {
	if int(id) >= len(sp.States) {
		return fmt.Sprintf("state#%d", id)
	}
	return sp.States[id].Name
}

// Decide returns the species' decision function.
func (sp *Species) Decide() Decider { return sp.decide }

func (sp *Species) intent(e *Enemy) []EnemyAction {
	if shouldSplit(sp, e) && sp.Decider == "split" {
		return []EnemyAction{{Kind: ActSplit}}
	}
	if int(e.AIState) >= len(sp.States) {
		return nil
	}
	return sp.States[e.AIState].Actions
}

func (sp *Species) validate() error {
	if sp.Name == "" {
		return fmt.Errorf("species with empty name")
	}
	if sp.HP[0] <= 0 || sp.HP[0] > sp.HP[1] {
		return fmt.Errorf("species %q: bad hp range %v", sp.Name, sp.HP)
	}
	if len(sp.States) == 0 {
		return fmt.Errorf("species %q: no states", sp.Name)
	}
	build, ok := deciders[sp.Decider]
	if !ok {
		return unsupported("species decider", sp.Decider)
	}
	if err := sp.Opening.resolve(sp, "opening"); err != nil {
		return err
	}
	for i := range sp.States {
		st := &sp.States[i]
		if err := st.resolve(sp, "state "+st.Name); err != nil {
			return err
		}
	}
	sp.decide = build(sp)
	return nil
}

// Bestiary is a validated, immutable set of species.
type Bestiary struct {
	species []*Species
	byName  map[string]*Species
}

// LoadBestiary parses and validates a species table.
func LoadBestiary(data []byte) (*Bestiary, error) {
	var sf SpeciesFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse species YAML: %w", err)
	}
	b := &Bestiary{byName: make(map[string]*Species, len(sf.Species))}
	for _, sp := range sf.Species {
		if err := sp.validate(); err != nil {
			return nil, err
		}
		if _, dup := b.byName[sp.Name]; dup {
			return nil, fmt.Errorf("species %q defined twice", sp.Name)
		}
		b.species = append(b.species, sp)
		b.byName[sp.Name] = sp
	}
	for _, sp := range b.species {
		if sp.Decider == "split" {
			if _, ok := b.byName[sp.SplitInto]; !ok {
				return nil, fmt.Errorf("species %q splits into unknown species %q", sp.Name, sp.SplitInto)
			}
		}
	}
	return b, nil
}

var defaultBestiary = mustLoadBestiary(speciesYAML)

func mustLoadBestiary(data []byte) *Bestiary {
	b, err := LoadBestiary(data)
	if err != nil {
		panic(fmt.Sprintf("embedded species table: %v", err))
	}
	return b
}

// DefaultBestiary returns the built-in species.
func DefaultBestiary() *Bestiary { return defaultBestiary }

// Lookup returns a species by name.
func (b *Bestiary) Lookup(name string) (*Species, bool) {
	sp, ok := b.byName[name]
	return sp, ok
}

// Names lists species in table order.
func (b *Bestiary) Names() []string {
	names := make([]string, len(b.species))
	for i, sp := range b.species {
		names[i] = sp.Name
	}
	return names
}

// Validate checks that every card an enemy can add exists in cat.
func (b *Bestiary) Validate(cat Catalog) error {
	for _, sp := range b.species {
		for _, st := range sp.States {
			for _, a := range st.Actions {
				if a.Kind != ActAddToDiscard && a.Kind != ActShuffleIntoDraw {
					continue
				}
				if _, ok := cat.Lookup(a.Card); !ok {
					return fmt.Errorf("species %q: %w", sp.Name, unsupported("card", a.Card))
				}
			}
		}
	}
	return nil
}

// Spawn rolls a fresh enemy of the named species.
func (b *Bestiary) Spawn(r *rng.RNG, name string) (*Enemy, error) {
	sp, ok := b.byName[name]
	if !ok {
		return nil, unsupported("species", name)
	}
	hp := r.IntRange(sp.HP[0], sp.HP[1])
	return b.spawn(r, sp, hp), nil
}

func (b *Bestiary) spawn(r *rng.RNG, sp *Species, hp int) *Enemy {
	e := &Enemy{
		Species: sp.Name,
		HP:      hp,
		MaxHP:   hp,
		Decide:  sp.decide,
		species: sp,
	}
	if sp.Bite[1] > 0 {
		e.Bite = r.IntRange(sp.Bite[0], sp.Bite[1])
	}
	for _, p := range sp.Powers {
		e.Statuses[p.Status] = r.IntRange(p.Amount[0], p.Amount[1])
	}
	e.AIState = sp.Opening.sample(r)
	return e
}

// StateNames lists the state names of a species in id order.
func (sp *Species) StateNames() []string {
	names := make([]string, len(sp.States))
	for i, st := range sp.States {
		names[i] = st.Name
	}
	return names
}
