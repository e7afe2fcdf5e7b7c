package game

import (
	"fmt"
	"slices"

	"github.com/peterkuimelis/deckcrawl/internal/log"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

// Player is the run-level state of the player, carried between fights.
type Player struct {
	HP         int
	MaxHP      int
	Deck       []Card // master deck
	BaseEnergy int
}

// RunConfig describes a run: the starting player and the encounter list.
type RunConfig struct {
	HP         int
	MaxHP      int
	Deck       []Card
	BaseEnergy int
	Encounters [][]string // species names per fight, in order

	Catalog  Catalog   // nil uses DefaultCatalog
	Bestiary *Bestiary // nil uses DefaultBestiary
	Logger   log.EventLogger
}

// State is a whole combat session. It owns all of its data; Clone returns a
// fully independent copy.
type State struct {
	Choice     Choice
	Player     Player
	Fight      *Fight
	Encounters [][]string
	Floor      int // index of the current encounter

	// Logger receives combat events. It may be nil and is not carried over by Clone.
	Logger log.EventLogger

	catalog  Catalog
	bestiary *Bestiary
	err      error
}

// NewState returns a session with no fight in progress. Use StartFight to
// begin an encounter.
func NewState(cat Catalog, b *Bestiary, p Player) *State {
	if cat == nil {
		cat = DefaultCatalog()
	}
	if b == nil {
		b = DefaultBestiary()
	}
	if p.BaseEnergy == 0 {
		p.BaseEnergy = BaseEnergy
	}
	if p.MaxHP < p.HP {
		p.MaxHP = p.HP
	}
	p.Deck = slices.Clone(p.Deck)
	return &State{catalog: cat, bestiary: b, Player: p}
}

// NewRun builds a session from cfg and starts its first encounter.
func NewRun(r *rng.RNG, cfg RunConfig) (*State, error) {
	if cfg.HP <= 0 {
		return nil, fmt.Errorf("new run: starting HP must be positive, got %d", cfg.HP)
	}
	if len(cfg.Deck) == 0 {
		return nil, fmt.Errorf("new run: empty deck")
	}
	if len(cfg.Encounters) == 0 {
		return nil, fmt.Errorf("new run: no encounters")
	}
	s := NewState(cfg.Catalog, cfg.Bestiary, Player{
		HP:         cfg.HP,
		MaxHP:      cfg.MaxHP,
		Deck:       cfg.Deck,
		BaseEnergy: cfg.BaseEnergy,
	})
	if err := s.bestiary.Validate(s.catalog); err != nil {
		return nil, fmt.Errorf("new run: %w", err)
	}
	for _, enc := range cfg.Encounters {
		for _, name := range enc {
			if _, ok := s.bestiary.Lookup(name); !ok {
				return nil, fmt.Errorf("new run: %w", unsupported("species", name))
			}
		}
	}
	s.Encounters = make([][]string, len(cfg.Encounters))
	for i, enc := range cfg.Encounters {
		s.Encounters[i] = slices.Clone(enc)
	}
	s.Logger = cfg.Logger
	if err := s.StartFight(r, s.Encounters[0]...); err != nil {
		return nil, err
	}
	return s, nil
}

// StartFight begins a fresh encounter against the named species and returns
// once the player's first decision is available.
func (s *State) StartFight(r *rng.RNG, species ...string) error {
	if len(species) == 0 || len(species) > MaxEnemies {
		return fmt.Errorf("start fight: need 1 to %d enemies, got %d", MaxEnemies, len(species))
	}
	f := &Fight{
		Deck:       NewDeck(s.Player.Deck),
		Introduced: len(s.Player.Deck),
	}
	names := make([]string, len(species))
	for i, name := range species {
		e, err := s.bestiary.Spawn(r, name)
		if err != nil {
			return fmt.Errorf("start fight: %w", err)
		}
		f.Enemies[i] = e
		names[i] = e.Name()
	}
	s.Fight = f
	s.Choice = Choice{Kind: ChoicePlayCard}
	s.emit(log.NewFightStartEvent(names))
	s.startTurn(r)
	return s.err
}

// Catalog returns the card catalog used by the session.
func (s *State) Catalog() Catalog { return s.catalog }

// Bestiary returns the species table used by the session.
func (s *State) Bestiary() *Bestiary { return s.bestiary }

// Err returns the error that ended the session early, if any.
func (s *State) Err() error { return s.err }

// IsTerminal reports whether no further actions can be applied.
func (s *State) IsTerminal() bool {
	return s.err != nil || s.Choice.Kind == ChoiceWin || s.Choice.Kind == ChoiceLoss
}

// Won reports whether the run ended in victory.
func (s *State) Won() bool { return s.err == nil && s.Choice.Kind == ChoiceWin }

// Clone returns a deep, independent copy of the session. The logger is not
// copied so that simulated futures stay silent.
func (s *State) Clone() *State {
	c := &State{
		Choice:   s.Choice.clone(),
		Player:   s.Player,
		Fight:    s.Fight.clone(),
		Floor:    s.Floor,
		catalog:  s.catalog,
		bestiary: s.bestiary,
		err:      s.err,
	}
	c.Player.Deck = slices.Clone(s.Player.Deck)
	c.Encounters = make([][]string, len(s.Encounters))
	for i, enc := range s.Encounters {
		c.Encounters[i] = slices.Clone(enc)
	}
	return c
}

// CardsInPlay counts every card belonging to the current fight: the four
// piles, the card being resolved, a card parked in a selection and queued
// plays. Purged copies are not counted.
func (s *State) CardsInPlay() int {
	f := s.Fight
	if f == nil {
		return 0
	}
	n := f.PileCount()
	if f.Active != nil && !f.Active.Purge {
		n++
	}
	if s.Choice.Kind == ChoiceSelectCard && s.Choice.Select != nil && !s.Choice.Select.Context.Purge {
		n++
	}
	for _, it := range f.Queue.items {
		if it.Kind == QueuePlayCard && !it.Purge {
			n++
		}
	}
	return n
}

// Introduced returns how many cards the current fight should account for:
// every card ever introduced minus the Powers that left play.
func (s *State) Introduced() int {
	if s.Fight == nil {
		return 0
	}
	return s.Fight.Introduced - s.Fight.Vanished
}

// poison ends the session because of unsupported content.
func (s *State) poison(err error) {
	if s.err == nil {
		s.err = err
	}
	if s.Fight != nil {
		s.Fight.Over = true
	}
}

func (s *State) emit(e log.GameEvent) {
	if s.Logger != nil {
		s.Logger.Log(e)
	}
}

func (s *State) turn() int {
	if s.Fight == nil {
		return 0
	}
	return s.Fight.Turn
}

func (s *State) phase() string {
	if s.Fight != nil && s.Fight.enemyPhase {
		return log.PhaseEnemy
	}
	return log.PhasePlayer
}

func (s *State) cardName(c Card) string { return s.catalog.Name(c) }
