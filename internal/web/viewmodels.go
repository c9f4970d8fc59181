package web

import (
	"github.com/Ragnr99/portfolio-hub/internal/battle"
	"github.com/Ragnr99/portfolio-hub/internal/roster"
)

// BattleView is the JSON shape of a battle as the client sees it.
type BattleView struct {
	Turn        int              `json:"turn"`
	Outcome     battle.Outcome   `json:"outcome"`
	PlayerState battle.SideState `json:"playerState"`
	EnemyState  battle.SideState `json:"enemyState"`
	Player      TeamView         `json:"player"`
	Enemy       TeamView         `json:"enemy"`
	Log         []string         `json:"log"`
	// Lines are the log lines produced by the request that returned this view.
	Lines []string `json:"lines,omitempty"`
}

type TeamView struct {
	Active  int          `json:"active"`
	Members []MemberView `json:"members"`
}

type MemberView struct {
	ID      int                    `json:"id"`
	Name    string                 `json:"name"`
	Sprite  string                 `json:"sprite,omitempty"`
	Types   []battle.Type          `json:"types"`
	Level   int                    `json:"level"`
	HP      int                    `json:"hp"`
	MaxHP   int                    `json:"maxHp"`
	Status  battle.StatusCondition `json:"status"`
	Fainted bool                   `json:"fainted"`
	Stages  *battle.Stages         `json:"stages,omitempty"`
	Moves   []battle.Move          `json:"moves,omitempty"`
}

func newBattleView(st battle.State, lines []string) BattleView {
	return BattleView{
		Turn:        st.Turn,
		Outcome:     st.Outcome,
		PlayerState: st.PlayerState(),
		EnemyState:  st.EnemyState(),
		Player:      newTeamView(st.Player, true),
		Enemy:       newTeamView(st.Enemy, false),
		Log:         st.Log,
		Lines:       lines,
	}
}

// newTeamView hides the opponent's move lists and stat stages.
func newTeamView(t battle.Team, own bool) TeamView {
	tv := TeamView{Active: t.Active, Members: make([]MemberView, len(t.Members))}
	for i, c := range t.Members {
		mv := MemberView{
			ID:      c.ID,
			Name:    c.Name,
			Sprite:  c.Sprite,
			Types:   c.Types,
			Level:   c.Level,
			HP:      c.HP,
			MaxHP:   c.MaxHP(),
			Status:  c.Status,
			Fainted: c.Fainted(),
		}
		if own {
			stages := c.Stages
			mv.Stages = &stages
			mv.Moves = c.Moves
		}
		tv.Members[i] = mv
	}
	return tv
}

// SpeciesView is one pickable entry of GET /roster.
type SpeciesView struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Slug      string        `json:"slug"`
	Sprite    string        `json:"sprite,omitempty"`
	Types     []battle.Type `json:"types"`
	Base      battle.Stats  `json:"base"`
	BaseTotal int           `json:"baseTotal"`
}

func newSpeciesView(sp roster.Species) SpeciesView {
	return SpeciesView{
		ID:        sp.ID,
		Name:      roster.DisplayName(sp.Name),
		Slug:      sp.Name,
		Sprite:    sp.Sprite,
		Types:     sp.Types,
		Base:      sp.Base,
		BaseTotal: sp.Base.Total(),
	}
}
