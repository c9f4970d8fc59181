package battle

import (
	"errors"
	"reflect"
	"testing"
)

// With the stub's default zero roll every variance factor is 0.85, so a
// normal-type tackle between two normal-type fighters deals
// floor(69 * 0.85) = 58.
const stabHit = 58

func testTeam(t *testing.T, prefix string, hps ...int) Team {
	t.Helper()
	members := make([]Combatant, len(hps))
	for i, hp := range hps {
		c := fighter(prefix+string(rune('1'+i)), "normal", 200)
		c.ID = i + 1
		c.HP = hp
		members[i] = c
	}
	team, err := NewTeam(members)
	if err != nil {
		t.Fatalf("NewTeam: %v", err)
	}
	return team
}

func testEngine(rng Rand) *Engine {
	return &Engine{Chart: DefaultTypeChart(), Rand: rng}
}

func TestNewBattle(t *testing.T) {
	st := NewBattle(testTeam(t, "P", 200, 200, 200), testTeam(t, "E", 200, 200, 200))
	if st.Turn != 1 {
		t.Errorf("Expected turn 1, got %d", st.Turn)
	}
	if st.Outcome != OutcomeOngoing {
		t.Errorf("Expected ongoing, got %v", st.Outcome)
	}
	if len(st.Log) != 1 || st.Log[0] != "Battle started!" {
		t.Errorf("Unexpected log %v", st.Log)
	}
}

func TestUseMove_Exchange(t *testing.T) {
	e := testEngine(&stubRand{})
	st := NewBattle(testTeam(t, "P", 200, 200, 200), testTeam(t, "E", 200, 200, 200))

	res, err := e.UseMove(st, 0)
	if err != nil {
		t.Fatalf("UseMove: %v", err)
	}

	want := []string{"P1 used tackle!", "Dealt 58 damage!", "E1 used tackle!", "Dealt 58 damage!"}
	if !reflect.DeepEqual(res.Lines, want) {
		t.Errorf("Expected lines %v, got %v", want, res.Lines)
	}
	if hp := res.State.Enemy.ActiveMember().HP; hp != 200-stabHit {
		t.Errorf("Expected enemy HP %d, got %d", 200-stabHit, hp)
	}
	if hp := res.State.Player.ActiveMember().HP; hp != 200-stabHit {
		t.Errorf("Expected player HP %d, got %d", 200-stabHit, hp)
	}
	if res.State.Turn != 2 {
		t.Errorf("Expected turn 2, got %d", res.State.Turn)
	}
	if len(res.State.Log) != 1+len(want) {
		t.Errorf("Expected full log of %d lines, got %d", 1+len(want), len(res.State.Log))
	}
}

func TestUseMove_DoesNotMutateInput(t *testing.T) {
	e := testEngine(&stubRand{})
	st := NewBattle(testTeam(t, "P", 200, 200, 200), testTeam(t, "E", 200, 200, 200))

	if _, err := e.UseMove(st, 0); err != nil {
		t.Fatalf("UseMove: %v", err)
	}
	if st.Enemy.Members[0].HP != 200 || st.Player.Members[0].HP != 200 {
		t.Error("Expected the input state's combatants to be untouched")
	}
	if len(st.Log) != 1 {
		t.Errorf("Expected input log to keep 1 line, got %d", len(st.Log))
	}
}

func TestUseMove_InvalidMove(t *testing.T) {
	e := testEngine(&stubRand{})
	st := NewBattle(testTeam(t, "P", 200, 200, 200), testTeam(t, "E", 200, 200, 200))
	for _, idx := range []int{-1, 1, 4} {
		if _, err := e.UseMove(st, idx); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("move %d: expected ErrInvalidMove, got %v", idx, err)
		}
	}
}

func TestUseMove_EnemyFaintSendsNext(t *testing.T) {
	e := testEngine(&stubRand{})
	st := NewBattle(testTeam(t, "P", 200, 200, 200), testTeam(t, "E", 30, 200, 200))

	res, err := e.UseMove(st, 0)
	if err != nil {
		t.Fatalf("UseMove: %v", err)
	}

	want := []string{"P1 used tackle!", "Dealt 58 damage!", "E1 fainted!", "Enemy sent out E2!"}
	if !reflect.DeepEqual(res.Lines, want) {
		t.Errorf("Expected lines %v, got %v", want, res.Lines)
	}
	if res.State.Enemy.Active != 1 {
		t.Errorf("Expected enemy slot 1 active, got %d", res.State.Enemy.Active)
	}
	if res.State.Enemy.Members[0].HP != 0 {
		t.Errorf("Expected fainted enemy at 0 HP, got %d", res.State.Enemy.Members[0].HP)
	}
	if hp := res.State.Player.ActiveMember().HP; hp != 200 {
		t.Errorf("Expected no counterattack after a faint, player HP %d", hp)
	}
}

func TestUseMove_Win(t *testing.T) {
	e := testEngine(&stubRand{})
	st := NewBattle(testTeam(t, "P", 200, 200, 200), testTeam(t, "E", 30, 0, 0))

	res, err := e.UseMove(st, 0)
	if err != nil {
		t.Fatalf("UseMove: %v", err)
	}
	if res.State.Outcome != OutcomeWin {
		t.Errorf("Expected win, got %v", res.State.Outcome)
	}
	if res.State.EnemyState() != SideDefeated {
		t.Errorf("Expected enemy defeated, got %v", res.State.EnemyState())
	}
	if last := res.Lines[len(res.Lines)-1]; last != "You win!" {
		t.Errorf("Expected last line 'You win!', got %q", last)
	}

	if _, err := e.UseMove(res.State, 0); !errors.Is(err, ErrBattleOver) {
		t.Errorf("Expected ErrBattleOver, got %v", err)
	}
	if _, err := e.Switch(res.State, 1); !errors.Is(err, ErrBattleOver) {
		t.Errorf("Expected ErrBattleOver on switch, got %v", err)
	}
}

func TestUseMove_PlayerFaintAwaitsSwitch(t *testing.T) {
	e := testEngine(&stubRand{})
	st := NewBattle(testTeam(t, "P", 50, 200, 200), testTeam(t, "E", 200, 200, 200))

	res, err := e.UseMove(st, 0)
	if err != nil {
		t.Fatalf("UseMove: %v", err)
	}
	if res.State.PlayerState() != SideAwaitingSwitch {
		t.Fatalf("Expected awaiting-switch, got %v", res.State.PlayerState())
	}
	if res.State.Outcome != OutcomeOngoing {
		t.Errorf("Expected ongoing, got %v", res.State.Outcome)
	}
	if last := res.Lines[len(res.Lines)-1]; last != "P1 fainted!" {
		t.Errorf("Expected last line 'P1 fainted!', got %q", last)
	}

	if _, err := e.UseMove(res.State, 0); !errors.Is(err, ErrMustSwitch) {
		t.Errorf("Expected ErrMustSwitch, got %v", err)
	}

	turn := res.State.Turn
	sw, err := e.Switch(res.State, 2)
	if err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if !reflect.DeepEqual(sw.Lines, []string{"Go P3!"}) {
		t.Errorf("Expected only 'Go P3!', got %v", sw.Lines)
	}
	if sw.State.Player.ActiveMember().HP != 200 {
		t.Errorf("Expected no free hit on a forced switch, HP %d", sw.State.Player.ActiveMember().HP)
	}
	if sw.State.Turn != turn {
		t.Errorf("Expected forced switch to keep turn %d, got %d", turn, sw.State.Turn)
	}
}

func TestUseMove_Loss(t *testing.T) {
	e := testEngine(&stubRand{})
	st := NewBattle(testTeam(t, "P", 50, 0, 0), testTeam(t, "E", 200, 200, 200))

	res, err := e.UseMove(st, 0)
	if err != nil {
		t.Fatalf("UseMove: %v", err)
	}
	if res.State.PlayerState() != SideDefeated {
		t.Errorf("Expected defeated, got %v", res.State.PlayerState())
	}
	if res.State.Outcome != OutcomeLoss {
		t.Errorf("Expected loss, got %v", res.State.Outcome)
	}
	if last := res.Lines[len(res.Lines)-1]; last != "You lost!" {
		t.Errorf("Expected last line 'You lost!', got %q", last)
	}
}

func TestUseMove_SleepingPlayerLosesTurn(t *testing.T) {
	e := testEngine(&stubRand{})
	player := testTeam(t, "P", 200, 200, 200)
	player.Members[0].Status = StatusSleep
	player.Members[0].SleepTurns = 2
	st := NewBattle(player, testTeam(t, "E", 200, 200, 200))

	res, err := e.UseMove(st, 0)
	if err != nil {
		t.Fatalf("UseMove: %v", err)
	}
	if !reflect.DeepEqual(res.Lines, []string{"P1 is fast asleep!"}) {
		t.Errorf("Unexpected lines %v", res.Lines)
	}
	if got := res.State.Player.ActiveMember().SleepTurns; got != 1 {
		t.Errorf("Expected SleepTurns 1, got %d", got)
	}
	if hp := res.State.Enemy.ActiveMember().HP; hp != 200 {
		t.Errorf("Expected enemy untouched, HP %d", hp)
	}
}

func TestUseMove_TurnEndPoison(t *testing.T) {
	e := testEngine(&stubRand{})
	player := testTeam(t, "P", 160, 200, 200)
	player.Members[0].Stats.HP = 160
	player.Members[0].Status = StatusPoison
	st := NewBattle(player, testTeam(t, "E", 200, 200, 200))

	res, err := e.UseMove(st, 0)
	if err != nil {
		t.Fatalf("UseMove: %v", err)
	}
	if hp := res.State.Player.ActiveMember().HP; hp != 160-stabHit-20 {
		t.Errorf("Expected HP %d, got %d", 160-stabHit-20, hp)
	}
	if last := res.Lines[len(res.Lines)-1]; last != "P1 is hurt by poison!" {
		t.Errorf("Expected poison line last, got %q", last)
	}
}

func TestUseMove_NoResidualAfterLoss(t *testing.T) {
	e := testEngine(&stubRand{})
	player := testTeam(t, "P", 5, 0, 0)
	player.Members[0].Status = StatusPoison
	player.Members[0].Moves = []Move{growl}
	enemy := testTeam(t, "E", 200, 200, 200)
	enemy.Members[0].Status = StatusPoison
	enemy.Members[0].Moves = []Move{growl}
	st := NewBattle(player, enemy)

	res, err := e.UseMove(st, 0)
	if err != nil {
		t.Fatalf("UseMove: %v", err)
	}
	if res.State.Outcome != OutcomeLoss {
		t.Errorf("Expected %s, got %s", OutcomeLoss, res.State.Outcome)
	}
	if last := res.Lines[len(res.Lines)-1]; last != "You lost!" {
		t.Errorf("Expected \"You lost!\" last, got %q", last)
	}
	if hp := res.State.Enemy.ActiveMember().HP; hp != 200 {
		t.Errorf("Expected enemy HP 200, got %d", hp)
	}
	for _, l := range res.Lines {
		if l == "E1 is hurt by poison!" {
			t.Error("Expected no enemy poison damage after the battle ended")
		}
	}
}

func TestUseMove_SecondaryEffect(t *testing.T) {
	e := testEngine(&stubRand{})
	player := testTeam(t, "P", 200, 200, 200)
	ember := Move{Name: "ember", Type: "fire", Category: CategorySpecial, Power: 40, Accuracy: 100,
		Effect: &SecondaryEffect{Status: StatusBurn, Chance: 0.1}}
	player.Members[0].Moves = []Move{ember}
	enemy := testTeam(t, "E", 200, 200, 200)
	enemy.Members[0].Moves = []Move{growl}
	st := NewBattle(player, enemy)

	res, err := e.UseMove(st, 0)
	if err != nil {
		t.Fatalf("UseMove: %v", err)
	}
	foe := res.State.Enemy.ActiveMember()
	if foe.Status != StatusBurn {
		t.Fatalf("Expected enemy burned, got %v", foe.Status)
	}

	hit := DamageWithVariance(e.Chart, st.Player.ActiveMember(), st.Enemy.ActiveMember(), ember, 0.85)
	if foe.HP != 200-hit-200/16 {
		t.Errorf("Expected enemy HP %d, got %d", 200-hit-200/16, foe.HP)
	}
}

func TestSwitch_VoluntaryGrantsFreeHit(t *testing.T) {
	e := testEngine(&stubRand{})
	player := testTeam(t, "P", 200, 200, 200)
	player.Members[0].Stages.Attack = 2
	st := NewBattle(player, testTeam(t, "E", 200, 200, 200))

	res, err := e.Switch(st, 1)
	if err != nil {
		t.Fatalf("Switch: %v", err)
	}
	want := []string{"Go P2!", "E1 used tackle!", "Dealt 58 damage!"}
	if !reflect.DeepEqual(res.Lines, want) {
		t.Errorf("Expected lines %v, got %v", want, res.Lines)
	}
	if res.State.Player.Active != 1 {
		t.Errorf("Expected slot 1 active, got %d", res.State.Player.Active)
	}
	if hp := res.State.Player.ActiveMember().HP; hp != 200-stabHit {
		t.Errorf("Expected incoming HP %d, got %d", 200-stabHit, hp)
	}
	if res.State.Player.Members[0].Stages != (Stages{}) {
		t.Error("Expected outgoing stages reset")
	}
	if res.State.Turn != 2 {
		t.Errorf("Expected the switch to cost the turn, got turn %d", res.State.Turn)
	}
}

func TestSwitch_FreeHitIgnoresStatusGate(t *testing.T) {
	// A zero roll would keep a gated frozen attacker frozen.
	e := testEngine(&stubRand{})
	enemy := testTeam(t, "E", 200, 200, 200)
	enemy.Members[0].Status = StatusFreeze
	st := NewBattle(testTeam(t, "P", 200, 200, 200), enemy)

	res, err := e.Switch(st, 1)
	if err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if hp := res.State.Player.ActiveMember().HP; hp != 200-stabHit {
		t.Errorf("Expected the frozen enemy to land its free hit, HP %d", hp)
	}
	if res.State.Enemy.ActiveMember().Status != StatusFreeze {
		t.Error("Expected enemy to remain frozen")
	}
}

func TestSwitch_Invalid(t *testing.T) {
	e := testEngine(&stubRand{})
	st := NewBattle(testTeam(t, "P", 200, 0, 200), testTeam(t, "E", 200, 200, 200))
	for _, idx := range []int{-1, 0, 1, 3} {
		if _, err := e.Switch(st, idx); !errors.Is(err, ErrInvalidSwitch) {
			t.Errorf("slot %d: expected ErrInvalidSwitch, got %v", idx, err)
		}
	}
}

func TestUseMove_SeededBattleTerminates(t *testing.T) {
	e := testEngine(NewRand(99))
	st := NewBattle(testTeam(t, "P", 200, 200, 200), testTeam(t, "E", 200, 200, 200))

	for i := 0; i < 500 && st.Outcome == OutcomeOngoing; i++ {
		var res TurnResult
		var err error
		if st.PlayerState() == SideAwaitingSwitch {
			next, _ := st.Player.NextAlive()
			res, err = e.Switch(st, next)
		} else {
			res, err = e.UseMove(st, 0)
		}
		if err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
		st = res.State
	}
	if st.Outcome == OutcomeOngoing {
		t.Fatal("Expected the battle to finish")
	}
	for _, team := range []Team{st.Player, st.Enemy} {
		for _, m := range team.Members {
			if m.HP < 0 || m.HP > m.MaxHP() {
				t.Errorf("HP %d outside [0, %d]", m.HP, m.MaxHP())
			}
		}
	}
}
