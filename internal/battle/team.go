package battle

import "fmt"

// TeamSize is the number of combatants each side brings.
const TeamSize = 3

// Team is one side's roster with a single active member.
type Team struct {
	Members []Combatant `json:"members"`
	Active  int         `json:"active"`
}

// NewTeam validates members and makes the first one active.
func NewTeam(members []Combatant) (Team, error) {
	if len(members) != TeamSize {
		return Team{}, fmt.Errorf("got %d members, want %d: %w", len(members), TeamSize, ErrTeamSize)
	}
	for _, m := range members {
		if len(m.Moves) == 0 {
			return Team{}, fmt.Errorf("%s has no moves: %w", m.Name, ErrNoMoves)
		}
	}
	out := make([]Combatant, len(members))
	copy(out, members)
	return Team{Members: out}, nil
}

// Clone copies the member slice so the result can be changed freely.
func (t Team) Clone() Team {
	members := make([]Combatant, len(t.Members))
	copy(members, t.Members)
	t.Members = members
	return t
}

// ActiveMember returns the combatant currently in battle.
func (t Team) ActiveMember() Combatant {
	return t.Members[t.Active]
}

// NextAlive returns the first member other than the active one that can
// still fight.
func (t Team) NextAlive() (int, bool) {
	for i, m := range t.Members {
		if i != t.Active && !m.Fainted() {
			return i, true
		}
	}
	return 0, false
}

// SideState is where one side stands in the faint/switch cycle. A fainted
// active member resolves straight to AwaitingSwitch or Defeated.
type SideState int

const (
	SideActive SideState = iota
	SideAwaitingSwitch
	SideDefeated
)

var sideStateNames = [...]string{"active", "awaiting-switch", "defeated"}

func (s SideState) String() string {
	if s < 0 || int(s) >= len(sideStateNames) {
		return fmt.Sprintf("SideState(%d)", int(s))
	}
	return sideStateNames[s]
}

func (s SideState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SideState) UnmarshalText(b []byte) error {
	for i, n := range sideStateNames {
		if n == string(b) {
			*s = SideState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown side state %q", b)
}

// State resolves the side: an able active member keeps it Active; otherwise
// it waits for a switch while anyone is left standing.
func (t Team) State() SideState {
	if len(t.Members) == 0 {
		return SideDefeated
	}
	if !t.ActiveMember().Fainted() {
		return SideActive
	}
	if _, ok := t.NextAlive(); ok {
		return SideAwaitingSwitch
	}
	return SideDefeated
}

// Outcome is the overall battle result from the player's point of view.
type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomeWin
	OutcomeLoss
)

var outcomeNames = [...]string{"ongoing", "win", "loss"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	for i, n := range outcomeNames {
		if n == string(b) {
			*o = Outcome(i)
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", b)
}
