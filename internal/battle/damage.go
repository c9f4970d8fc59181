package battle

import "math"

var stageMultipliers = [...]float64{0.25, 0.28, 0.33, 0.4, 0.5, 0.66, 1, 1.5, 2, 2.5, 3, 3.5, 4}

// StatMultiplier returns the factor for a stat stage. Stages outside
// [MinStage, MaxStage] are treated as neutral.
func StatMultiplier(stage int) float64 {
	if stage < MinStage || stage > MaxStage {
		return 1
	}
	return stageMultipliers[stage-MinStage]
}

const (
	stabBonus   = 1.5
	minVariance = 0.85
	maxVariance = 1.0
)

// Variance draws the random damage factor in [0.85, 1.0].
func Variance(rng Rand) float64 {
	return rng.Float64()*(maxVariance-minVariance) + minVariance
}

// CalculateDamage resolves one hit of move from attacker onto defender.
func CalculateDamage(chart TypeChart, attacker, defender Combatant, move Move, rng Rand) int {
	if move.Power == 0 || defender.Fainted() {
		return 0
	}
	return DamageWithVariance(chart, attacker, defender, move, Variance(rng))
}

// DamageWithVariance is CalculateDamage with the random factor supplied.
func DamageWithVariance(chart TypeChart, attacker, defender Combatant, move Move, variance float64) int {
	if move.Power == 0 {
		return 0
	}

	var atk, def, atkStage, defStage int
	if move.Category == CategoryPhysical {
		atk, def = attacker.Stats.Attack, defender.Stats.Defense
		atkStage, defStage = attacker.Stages.Attack, defender.Stages.Defense
	} else {
		atk, def = attacker.Stats.SpecialAttack, defender.Stats.SpecialDefense
		atkStage, defStage = attacker.Stages.SpecialAttack, defender.Stages.SpecialDefense
	}
	atk = int(math.Floor(float64(atk) * StatMultiplier(atkStage)))
	def = int(math.Floor(float64(def) * StatMultiplier(defStage)))
	if def < 1 {
		def = 1
	}

	if attacker.Status == StatusBurn && move.Category == CategoryPhysical {
		atk /= 2
	}

	level := float64(attacker.Level)
	dmg := ((2*level/5+2)*float64(move.Power)*float64(atk)/float64(def))/50 + 2

	if attacker.HasType(move.Type) {
		dmg *= stabBonus
	}

	eff := chart.Effectiveness(move.Type, defender.Types)
	if eff == 0 {
		return 0
	}
	dmg *= eff
	dmg *= variance

	out := int(math.Floor(dmg))
	if out < 0 {
		return 0
	}
	return out
}
