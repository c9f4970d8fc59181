package battle

import (
	"fmt"
)

// Engine sequences turns over the resolver functions. It holds no battle
// state of its own; every call takes a State and returns the next one.
type Engine struct {
	Chart TypeChart
	Rand  Rand
}

// Side identifies the player or the opponent.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// State is one battle session.
type State struct {
	Player  Team     `json:"player"`
	Enemy   Team     `json:"enemy"`
	Turn    int      `json:"turn"`
	Outcome Outcome  `json:"outcome"`
	Log     []string `json:"log"`
}

// PlayerState is the player's side in the faint/switch cycle.
func (st State) PlayerState() SideState {
	return st.Player.State()
}

// EnemyState is the opponent's side in the faint/switch cycle.
func (st State) EnemyState() SideState {
	return st.Enemy.State()
}

// TurnResult is the state after an action plus the log lines it produced.
type TurnResult struct {
	State State
	Lines []string
}

// NewBattle starts a battle with both first members active.
func NewBattle(player, enemy Team) State {
	return State{
		Player: player.Clone(),
		Enemy:  enemy.Clone(),
		Turn:   1,
		Log:    []string{"Battle started!"},
	}
}

// UseMove runs a full turn in which the player's active combatant uses the
// move at moveIndex and the opponent answers with a random move.
func (e *Engine) UseMove(st State, moveIndex int) (TurnResult, error) {
	if st.Outcome != OutcomeOngoing {
		return TurnResult{}, ErrBattleOver
	}
	if st.Player.State() != SideActive {
		return TurnResult{}, ErrMustSwitch
	}
	active := st.Player.ActiveMember()
	if moveIndex < 0 || moveIndex >= len(active.Moves) {
		return TurnResult{}, fmt.Errorf("move %d for %s: %w", moveIndex, active.Name, ErrInvalidMove)
	}

	t := e.begin(st)
	acted, fainted := t.attack(SidePlayer, active.Moves[moveIndex], true)
	switch {
	case !acted:
	case fainted:
		t.faint(SideEnemy)
	default:
		_, fainted = t.attack(SideEnemy, t.enemyMove(), true)
		if fainted {
			t.faint(SidePlayer)
		}
	}
	t.endTurn()
	return t.result(), nil
}

// Switch brings in the member at index. After a faint this is a free
// replacement; otherwise it costs the turn and the opponent gets one
// ungated attack on the incoming combatant.
func (e *Engine) Switch(st State, index int) (TurnResult, error) {
	if st.Outcome != OutcomeOngoing {
		return TurnResult{}, ErrBattleOver
	}
	if index < 0 || index >= len(st.Player.Members) || index == st.Player.Active || st.Player.Members[index].Fainted() {
		return TurnResult{}, fmt.Errorf("switch to slot %d: %w", index, ErrInvalidSwitch)
	}
	forced := st.Player.State() == SideAwaitingSwitch

	t := e.begin(st)
	if !forced {
		p := &t.st.Player
		p.Members[p.Active] = p.Members[p.Active].ResetStages()
	}
	t.st.Player.Active = index
	t.logf("Go %s!", t.st.Player.ActiveMember().Name)
	if forced {
		return t.result(), nil
	}

	_, fainted := t.attack(SideEnemy, t.enemyMove(), false)
	if fainted {
		t.faint(SidePlayer)
	}
	t.endTurn()
	return t.result(), nil
}

type turn struct {
	e     *Engine
	st    State
	start int
}

func (e *Engine) begin(st State) *turn {
	st.Player = st.Player.Clone()
	st.Enemy = st.Enemy.Clone()
	st.Log = append([]string(nil), st.Log...)
	return &turn{e: e, st: st, start: len(st.Log)}
}

func (t *turn) result() TurnResult {
	lines := append([]string(nil), t.st.Log[t.start:]...)
	return TurnResult{State: t.st, Lines: lines}
}

func (t *turn) logf(format string, args ...any) {
	t.st.Log = append(t.st.Log, fmt.Sprintf(format, args...))
}

func (t *turn) team(s Side) *Team {
	if s == SidePlayer {
		return &t.st.Player
	}
	return &t.st.Enemy
}

func other(s Side) Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

func (t *turn) enemyMove() Move {
	moves := t.st.Enemy.ActiveMember().Moves
	return moves[t.e.Rand.Intn(len(moves))]
}

// attack resolves one move from side's active member onto the opposing
// active member. It reports whether the attacker got to act and whether
// the defender fainted from the hit.
func (t *turn) attack(side Side, move Move, gated bool) (acted, fainted bool) {
	atkTeam, defTeam := t.team(side), t.team(other(side))
	attacker := atkTeam.ActiveMember()
	defender := defTeam.ActiveMember()

	if gated {
		var chk ActionCheck
		attacker, chk = CheckAction(attacker, t.e.Rand)
		atkTeam.Members[atkTeam.Active] = attacker
		if chk.Message != "" {
			t.logf("%s", chk.Message)
		}
		if !chk.CanAct {
			return false, false
		}
	}

	t.logf("%s used %s!", attacker.Name, move.Name)
	dmg := CalculateDamage(t.e.Chart, attacker, defender, move, t.e.Rand)
	if dmg > 0 {
		defender = defender.TakeDamage(dmg)
		t.logf("Dealt %d damage!", dmg)
	} else if move.Power > 0 && t.e.Chart.Effectiveness(move.Type, defender.Types) == 0 {
		t.logf("It doesn't affect %s...", defender.Name)
	}

	if eff := move.Effect; eff != nil && !defender.Fainted() && defender.Status == StatusNone {
		if t.e.Rand.Float64() < eff.Chance {
			defender = ApplyStatus(defender, eff.Status, t.e.Rand)
			t.logf("%s %s", defender.Name, inflictedText(eff.Status))
		}
	}

	defTeam.Members[defTeam.Active] = defender
	return true, dmg > 0 && defender.Fainted()
}

func inflictedText(s StatusCondition) string {
	switch s {
	case StatusBurn:
		return "was burned!"
	case StatusParalyze:
		return "was paralyzed!"
	case StatusSleep:
		return "fell asleep!"
	case StatusPoison:
		return "was poisoned!"
	case StatusFreeze:
		return "was frozen solid!"
	}
	return "was affected!"
}

// faint announces that side's active member fainted and moves the side on:
// the opponent sends out its next member at once, the player has to pick.
func (t *turn) faint(side Side) {
	team := t.team(side)
	t.logf("%s fainted!", team.ActiveMember().Name)

	switch team.State() {
	case SideAwaitingSwitch:
		if side == SideEnemy {
			next, _ := team.NextAlive()
			team.Active = next
			t.logf("Enemy sent out %s!", team.ActiveMember().Name)
		}
	case SideDefeated:
		if t.st.Outcome != OutcomeOngoing {
			return
		}
		if side == SideEnemy {
			t.st.Outcome = OutcomeWin
			t.logf("You win!")
		} else {
			t.st.Outcome = OutcomeLoss
			t.logf("You lost!")
		}
	}
}

// endTurn applies burn and poison damage to both active members and
// advances the turn counter.
func (t *turn) endTurn() {
	if t.st.Outcome == OutcomeOngoing {
		for _, side := range []Side{SidePlayer, SideEnemy} {
			if t.st.Outcome != OutcomeOngoing {
				break
			}
			team := t.team(side)
			c := team.ActiveMember()
			if c.Fainted() {
				continue
			}
			res := ProcessTurnEndStatus(c)
			team.Members[team.Active] = res.Combatant
			if res.Damage == 0 {
				continue
			}
			t.logf("%s", res.Message)
			if res.Combatant.Fainted() {
				t.faint(side)
			}
		}
	}
	t.st.Turn++
}
