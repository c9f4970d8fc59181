// Package roster supplies species data for building battle teams, either
// from a YAML file or from a PokeAPI SQLite dump.
package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ragnr99/portfolio-hub/internal/battle"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Species is the source data for one combatant.
type Species struct {
	ID     int           `yaml:"id" json:"id"`
	Name   string        `yaml:"name" json:"name"`
	Sprite string        `yaml:"sprite" json:"sprite"`
	Types  []battle.Type `yaml:"types" json:"types"`
	Base   battle.Stats  `yaml:"base" json:"base"`
	Moves  []battle.Move `yaml:"moves" json:"moves,omitempty"`
}

// Source lists species. All may omit move lists; ByID must include them.
type Source interface {
	All(ctx context.Context) ([]Species, error)
	ByID(ctx context.Context, id int) (Species, error)
}

var (
	ErrNotFound   = errors.New("species not found")
	ErrIneligible = errors.New("species is below the minimum base stat total")
	ErrEmptyPool  = errors.New("no eligible species")
)

const (
	DefaultLevel    = 50
	DefaultMinTotal = 400
	maxMoves        = 4
)

// Roster builds battle teams from a Source.
type Roster struct {
	Source   Source
	Level    int
	MinTotal int
}

func New(src Source, level, minTotal int) *Roster {
	if level <= 0 {
		level = DefaultLevel
	}
	return &Roster{Source: src, Level: level, MinTotal: minTotal}
}

// Eligible reports whether sp is strong enough to be picked.
func (r *Roster) Eligible(sp Species) bool {
	return sp.Base.Total() >= r.MinTotal
}

// Pool returns every species that can be picked for a team.
func (r *Roster) Pool(ctx context.Context) ([]Species, error) {
	all, err := r.Source.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("error while listing species: %w", err)
	}
	out := make([]Species, 0, len(all))
	for _, sp := range all {
		if r.Eligible(sp) {
			out = append(out, sp)
		}
	}
	return out, nil
}

// Team builds a team from explicit species IDs.
func (r *Roster) Team(ctx context.Context, ids []int) (battle.Team, error) {
	members := make([]battle.Combatant, 0, len(ids))
	for _, id := range ids {
		sp, err := r.Source.ByID(ctx, id)
		if err != nil {
			return battle.Team{}, fmt.Errorf("could not load species %d: %w", id, err)
		}
		if !r.Eligible(sp) {
			return battle.Team{}, fmt.Errorf("species %q: %w", sp.Name, ErrIneligible)
		}
		members = append(members, Build(sp, r.Level))
	}
	return battle.NewTeam(members)
}

// RandomTeam draws battle.TeamSize species from the pool. The same species
// may be drawn more than once.
func (r *Roster) RandomTeam(ctx context.Context, rng battle.Rand) (battle.Team, error) {
	pool, err := r.Pool(ctx)
	if err != nil {
		return battle.Team{}, err
	}
	if len(pool) == 0 {
		return battle.Team{}, ErrEmptyPool
	}
	ids := make([]int, battle.TeamSize)
	for i := range ids {
		ids[i] = pool[rng.Intn(len(pool))].ID
	}
	return r.Team(ctx, ids)
}

// Build turns species data into a full-HP combatant at level.
func Build(sp Species, level int) battle.Combatant {
	var primary battle.Type
	if len(sp.Types) > 0 {
		primary = sp.Types[0]
	}
	moves := CompleteMoves(sp.Moves, primary)
	return battle.NewCombatant(sp.ID, DisplayName(sp.Name), sp.Sprite, sp.Types, sp.Base, level, moves)
}

// DisplayName turns an API slug like "mr-mime" into "Mr Mime".
func DisplayName(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

var fallbackMoves = map[battle.Type]battle.Move{
	"fire":     {Name: "flamethrower", Type: "fire", Category: battle.CategorySpecial, Power: 90, Accuracy: 100},
	"water":    {Name: "surf", Type: "water", Category: battle.CategorySpecial, Power: 90, Accuracy: 100},
	"grass":    {Name: "energy-ball", Type: "grass", Category: battle.CategorySpecial, Power: 90, Accuracy: 100},
	"electric": {Name: "thunderbolt", Type: "electric", Category: battle.CategorySpecial, Power: 90, Accuracy: 100},
}

var bodySlam = battle.Move{Name: "body-slam", Type: "normal", Category: battle.CategoryPhysical, Power: 85, Accuracy: 100}

// secondaryEffects are the on-hit status chances the simulator knows about.
var secondaryEffects = map[string]battle.SecondaryEffect{
	"ember":         {Status: battle.StatusBurn, Chance: 0.1},
	"thundershock":  {Status: battle.StatusParalyze, Chance: 0.1},
	"thunder-shock": {Status: battle.StatusParalyze, Chance: 0.1},
}

// CompleteMoves guarantees a usable move set: at least one damaging move
// (a type-matched fallback if needed, also for an empty list) and at most
// four moves in total.
func CompleteMoves(moves []battle.Move, primary battle.Type) []battle.Move {
	out := make([]battle.Move, 0, len(moves)+1)
	damaging := false
	for _, m := range moves {
		if m.Accuracy == 0 {
			m.Accuracy = 100
		}
		if m.Effect == nil {
			if eff, ok := secondaryEffects[m.Name]; ok {
				eff := eff
				m.Effect = &eff
			}
		}
		if m.Power > 0 {
			damaging = true
		}
		out = append(out, m)
	}
	if !damaging {
		fb, ok := fallbackMoves[primary]
		if !ok {
			fb = bodySlam
		}
		if len(out) >= maxMoves {
			out = out[:maxMoves-1]
		}
		out = append(out, fb)
	}
	if len(out) > maxMoves {
		out = out[:maxMoves]
	}
	return out
}
