package battle

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TypeChart maps attacking type -> defending type -> multiplier.
// Pairs that are absent are neutral.
type TypeChart map[Type]map[Type]float64

// Multiplier returns the effectiveness of one attacking type against one
// defending type.
func (tc TypeChart) Multiplier(atk, def Type) float64 {
	row, ok := tc[atk]
	if !ok {
		return 1
	}
	m, ok := row[def]
	if !ok {
		return 1
	}
	return m
}

// Effectiveness multiplies the matchup over every defending type.
func (tc TypeChart) Effectiveness(atk Type, defs []Type) float64 {
	eff := 1.0
	for _, d := range defs {
		eff *= tc.Multiplier(atk, d)
	}
	return eff
}

// DefaultTypeChart returns the standard 18-type chart.
func DefaultTypeChart() TypeChart {
	return TypeChart{
		"normal":   {"rock": 0.5, "ghost": 0, "steel": 0.5},
		"fire":     {"fire": 0.5, "water": 0.5, "grass": 2, "ice": 2, "bug": 2, "rock": 0.5, "dragon": 0.5, "steel": 2},
		"water":    {"fire": 2, "water": 0.5, "grass": 0.5, "ground": 2, "rock": 2, "dragon": 0.5},
		"electric": {"water": 2, "electric": 0.5, "grass": 0.5, "ground": 0, "flying": 2, "dragon": 0.5},
		"grass":    {"fire": 0.5, "water": 2, "grass": 0.5, "poison": 0.5, "ground": 2, "flying": 0.5, "bug": 0.5, "rock": 2, "dragon": 0.5, "steel": 0.5},
		"ice":      {"fire": 0.5, "water": 0.5, "grass": 2, "ice": 0.5, "ground": 2, "flying": 2, "dragon": 2, "steel": 0.5},
		"fighting": {"normal": 2, "ice": 2, "poison": 0.5, "flying": 0.5, "psychic": 0.5, "bug": 0.5, "rock": 2, "ghost": 0, "dark": 2, "steel": 2, "fairy": 0.5},
		"poison":   {"grass": 2, "poison": 0.5, "ground": 0.5, "rock": 0.5, "ghost": 0.5, "steel": 0, "fairy": 2},
		"ground":   {"fire": 2, "electric": 2, "grass": 0.5, "poison": 2, "flying": 0, "bug": 0.5, "rock": 2, "steel": 2},
		"flying":   {"electric": 0.5, "grass": 2, "fighting": 2, "bug": 2, "rock": 0.5, "steel": 0.5},
		"psychic":  {"fighting": 2, "poison": 2, "psychic": 0.5, "dark": 0, "steel": 0.5},
		"bug":      {"fire": 0.5, "grass": 2, "fighting": 0.5, "poison": 0.5, "flying": 0.5, "psychic": 2, "ghost": 0.5, "dark": 2, "steel": 0.5, "fairy": 0.5},
		"rock":     {"fire": 2, "ice": 2, "fighting": 0.5, "ground": 0.5, "flying": 2, "bug": 2, "steel": 0.5},
		"ghost":    {"normal": 0, "psychic": 2, "ghost": 2, "dark": 0.5},
		"dragon":   {"dragon": 2, "steel": 0.5, "fairy": 0},
		"dark":     {"fighting": 0.5, "psychic": 2, "ghost": 2, "dark": 0.5, "fairy": 0.5},
		"steel":    {"fire": 0.5, "water": 0.5, "electric": 0.5, "ice": 2, "rock": 2, "steel": 0.5, "fairy": 2},
		"fairy":    {"fire": 0.5, "fighting": 2, "poison": 0.5, "dragon": 2, "dark": 2, "steel": 0.5},
	}
}

// LoadTypeChart reads a chart from a YAML file shaped like
//
//	fire:
//	  grass: 2
//	  water: 0.5
func LoadTypeChart(path string) (TypeChart, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read type chart: %w", err)
	}
	var tc TypeChart
	if err := yaml.Unmarshal(b, &tc); err != nil {
		return nil, fmt.Errorf("failed to decode type chart %q: %w", path, err)
	}
	for atk, row := range tc {
		for def, m := range row {
			if m != 0 && m != 0.5 && m != 1 && m != 2 {
				return nil, fmt.Errorf("type chart %q: %s vs %s has multiplier %v: %w", path, atk, def, m, ErrBadMultiplier)
			}
		}
	}
	return tc, nil
}
