package battle

import "fmt"

const (
	freezeHoldChance = 0.8
	paralyzeChance   = 0.25
	maxSleepTurns    = 3
)

// ApplyStatus inflicts status on target unless it already carries one.
// Statuses never stack or overwrite each other.
func ApplyStatus(target Combatant, status StatusCondition, rng Rand) Combatant {
	if target.Status != StatusNone || status == StatusNone {
		return target
	}
	target.Status = status
	if status == StatusSleep {
		target.SleepTurns = rng.Intn(maxSleepTurns) + 1
	}
	return target
}

// ActionCheck is the outcome of the turn-start status gate.
type ActionCheck struct {
	CanAct  bool
	Message string
}

// CheckAction runs the status gate before c's move. The returned combatant
// carries any thaw, wake-up or sleep countdown.
func CheckAction(c Combatant, rng Rand) (Combatant, ActionCheck) {
	switch c.Status {
	case StatusFreeze:
		if rng.Float64() < freezeHoldChance {
			return c, ActionCheck{Message: fmt.Sprintf("%s is frozen solid!", c.Name)}
		}
		c.Status = StatusNone
		return c, ActionCheck{CanAct: true, Message: fmt.Sprintf("%s thawed out!", c.Name)}
	case StatusSleep:
		if c.SleepTurns > 0 {
			c.SleepTurns--
			return c, ActionCheck{Message: fmt.Sprintf("%s is fast asleep!", c.Name)}
		}
		c.Status = StatusNone
		return c, ActionCheck{CanAct: true, Message: fmt.Sprintf("%s woke up!", c.Name)}
	case StatusParalyze:
		if rng.Float64() < paralyzeChance {
			return c, ActionCheck{Message: fmt.Sprintf("%s is fully paralyzed!", c.Name)}
		}
	}
	return c, ActionCheck{CanAct: true}
}

// TurnEndResult reports the residual damage dealt at the end of a turn.
type TurnEndResult struct {
	Combatant Combatant
	Damage    int
	Message   string
}

// ProcessTurnEndStatus applies burn or poison damage to c. A fainted
// combatant takes nothing.
func ProcessTurnEndStatus(c Combatant) TurnEndResult {
	if c.Fainted() {
		return TurnEndResult{Combatant: c}
	}
	var dmg int
	var msg string
	switch c.Status {
	case StatusBurn:
		dmg = c.MaxHP() / 16
		msg = fmt.Sprintf("%s is hurt by burn!", c.Name)
	case StatusPoison:
		dmg = c.MaxHP() / 8
		msg = fmt.Sprintf("%s is hurt by poison!", c.Name)
	}

	c.HP -= dmg
	if c.HP < 0 {
		c.HP = 0
	}
	return TurnEndResult{Combatant: c, Damage: dmg, Message: msg}
}
