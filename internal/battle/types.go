package battle

import (
	"fmt"
	"strings"
)

// Type is an elemental type tag such as "fire" or "ghost".
type Type string

// Category decides which stat pair a move reads.
type Category string

const (
	CategoryPhysical Category = "physical"
	CategorySpecial  Category = "special"
	CategoryStatus   Category = "status"
)

// StatusCondition is the single non-volatile condition a combatant can carry.
type StatusCondition int

const (
	StatusNone StatusCondition = iota
	StatusBurn
	StatusParalyze
	StatusSleep
	StatusPoison
	StatusFreeze
)

var statusNames = [...]string{"none", "burn", "paralyze", "sleep", "poison", "freeze"}

func (s StatusCondition) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("StatusCondition(%d)", int(s))
	}
	return statusNames[s]
}

func (s StatusCondition) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *StatusCondition) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStatus maps a status name to its condition. The empty string is none.
func ParseStatus(name string) (StatusCondition, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return StatusNone, nil
	}
	for i, n := range statusNames {
		if n == name {
			return StatusCondition(i), nil
		}
	}
	return StatusNone, fmt.Errorf("unknown status %q", name)
}

// Stats holds the six battle stats.
type Stats struct {
	HP             int `yaml:"hp" json:"hp"`
	Attack         int `yaml:"attack" json:"attack"`
	Defense        int `yaml:"defense" json:"defense"`
	SpecialAttack  int `yaml:"specialAttack" json:"specialAttack"`
	SpecialDefense int `yaml:"specialDefense" json:"specialDefense"`
	Speed          int `yaml:"speed" json:"speed"`
}

// Total is the sum of all six stats.
func (s Stats) Total() int {
	return s.HP + s.Attack + s.Defense + s.SpecialAttack + s.SpecialDefense + s.Speed
}

// Stat names one of the stage-modifiable stats.
type Stat int

const (
	StatAttack Stat = iota
	StatDefense
	StatSpecialAttack
	StatSpecialDefense
	StatSpeed
)

const (
	MinStage = -6
	MaxStage = 6
)

// Stages are the in-battle stat modifiers, each within [MinStage, MaxStage].
type Stages struct {
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
	Speed          int `json:"speed"`
}

func (s *Stages) ptr(stat Stat) *int {
	switch stat {
	case StatAttack:
		return &s.Attack
	case StatDefense:
		return &s.Defense
	case StatSpecialAttack:
		return &s.SpecialAttack
	case StatSpecialDefense:
		return &s.SpecialDefense
	case StatSpeed:
		return &s.Speed
	default:
		return nil
	}
}

// SecondaryEffect is a chance to inflict a status on the target after a hit.
type SecondaryEffect struct {
	Status StatusCondition `yaml:"status" json:"status"`
	Chance float64         `yaml:"chance" json:"chance"` // 0..1
}

// Move is a single attack a combatant can use.
type Move struct {
	Name     string           `yaml:"name" json:"name"`
	Type     Type             `yaml:"type" json:"type"`
	Category Category         `yaml:"category" json:"category"`
	Power    int              `yaml:"power" json:"power"`
	Accuracy int              `yaml:"accuracy" json:"accuracy"`
	Effect   *SecondaryEffect `yaml:"effect,omitempty" json:"effect,omitempty"`
}

// Combatant is a battle snapshot of one team member. Functions in this
// package take and return Combatant values; callers keep the result.
type Combatant struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Sprite string `json:"sprite"`
	Types  []Type `json:"types"`
	Level  int    `json:"level"`
	Stats  Stats  `json:"stats"`
	Moves  []Move `json:"moves"`

	HP         int             `json:"hp"`
	Status     StatusCondition `json:"status"`
	SleepTurns int             `json:"sleepTurns"`
	Stages     Stages          `json:"stages"`
}

// MaxHP is the HP the combatant was built with.
func (c Combatant) MaxHP() int {
	return c.Stats.HP
}

// Fainted reports whether the combatant is out of the battle.
func (c Combatant) Fainted() bool {
	return c.HP <= 0
}

// HasType reports whether t is one of the combatant's own types.
func (c Combatant) HasType(t Type) bool {
	for _, own := range c.Types {
		if own == t {
			return true
		}
	}
	return false
}

// TakeDamage subtracts dmg from HP, flooring at zero. A fainted combatant
// is returned unchanged.
func (c Combatant) TakeDamage(dmg int) Combatant {
	if c.Fainted() || dmg <= 0 {
		return c
	}
	c.HP -= dmg
	if c.HP < 0 {
		c.HP = 0
	}
	return c
}

// ModifyStage shifts one stat stage by delta, clamped to [MinStage, MaxStage].
func (c Combatant) ModifyStage(stat Stat, delta int) Combatant {
	p := c.Stages.ptr(stat)
	if p == nil {
		return c
	}
	v := *p + delta
	if v > MaxStage {
		v = MaxStage
	}
	if v < MinStage {
		v = MinStage
	}
	*p = v
	return c
}

// ResetStages clears all stat stages, as happens on switching out.
func (c Combatant) ResetStages() Combatant {
	c.Stages = Stages{}
	return c
}

// NewCombatant derives level-scaled battle stats from base stats using
// perfect IVs and no EVs, and returns a full-HP combatant.
func NewCombatant(id int, name, sprite string, types []Type, base Stats, level int, moves []Move) Combatant {
	scale := func(b int) int {
		return (2*b + 31) * level / 100
	}
	stats := Stats{
		HP:             scale(base.HP) + level + 10,
		Attack:         scale(base.Attack) + 5,
		Defense:        scale(base.Defense) + 5,
		SpecialAttack:  scale(base.SpecialAttack) + 5,
		SpecialDefense: scale(base.SpecialDefense) + 5,
		Speed:          scale(base.Speed) + 5,
	}
	return Combatant{
		ID:     id,
		Name:   name,
		Sprite: sprite,
		Types:  types,
		Level:  level,
		Stats:  stats,
		Moves:  moves,
		HP:     stats.HP,
	}
}
