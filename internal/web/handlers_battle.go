package web

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Ragnr99/portfolio-hub/internal/battle"
	"github.com/Ragnr99/portfolio-hub/internal/report"
)

const (
	modeCustom = "custom"
	modeRandom = "random"
)

type startRequest struct {
	Mode string `json:"mode"`
	Team []int  `json:"team"`
}

type moveRequest struct {
	Move *int `json:"move"`
}

type switchRequest struct {
	Index *int `json:"index"`
}

// POST /battle/start
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	ctx := r.Context()

	var req startRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	var player battle.Team
	var err error
	switch req.Mode {
	case modeCustom:
		if len(req.Team) != battle.TeamSize {
			writeError(w, fmt.Errorf("%w: pick exactly %d species, got %d", errBadRequest, battle.TeamSize, len(req.Team)))
			return
		}
		player, err = s.Roster.Team(ctx, req.Team)
	case modeRandom, "":
		player, err = s.Roster.RandomTeam(ctx, s.Engine.Rand)
	default:
		writeError(w, fmt.Errorf("%w: unknown mode %q", errBadRequest, req.Mode))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	enemy, err := s.Roster.RandomTeam(ctx, s.Engine.Rand)
	if err != nil {
		writeError(w, err)
		return
	}

	id := s.ensureSession(w, r)
	st := battle.NewBattle(player, enemy)
	if err := s.Store.Put(ctx, id, st); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newBattleView(st, st.Log))
}

// GET /battle
func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	st, _, err := s.currentBattle(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newBattleView(st, nil))
}

// POST /battle/move
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req moveRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Move == nil {
		writeError(w, fmt.Errorf("%w: missing move", errBadRequest))
		return
	}
	s.advance(w, r, func(st battle.State) (battle.TurnResult, error) {
		return s.Engine.UseMove(st, *req.Move)
	})
}

// POST /battle/switch
func (s *Server) handleSwitch(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req switchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Index == nil {
		writeError(w, fmt.Errorf("%w: missing index", errBadRequest))
		return
	}
	s.advance(w, r, func(st battle.State) (battle.TurnResult, error) {
		return s.Engine.Switch(st, *req.Index)
	})
}

// advance applies one player action to the session's battle atomically.
func (s *Server) advance(w http.ResponseWriter, r *http.Request, act func(battle.State) (battle.TurnResult, error)) {
	id := s.sessionID(r)
	if id == "" {
		writeError(w, errNoBattle)
		return
	}
	var lines []string
	st, err := s.Store.Update(r.Context(), id, func(st battle.State) (battle.State, error) {
		res, err := act(st)
		if err != nil {
			return st, err
		}
		lines = res.Lines
		return res.State, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newBattleView(st, lines))
}

// POST /battle/reset
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if id := s.sessionID(r); id != "" {
		if err := s.Store.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /battle/report.pdf
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	st, _, err := s.currentBattle(r)
	if err != nil {
		writeError(w, err)
		return
	}
	pdf, err := report.Generate(st)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="battle-report.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("error writing report: %v", err)
	}
}
