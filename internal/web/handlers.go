package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Ragnr99/portfolio-hub/internal/battle"
	"github.com/Ragnr99/portfolio-hub/internal/roster"
	"github.com/Ragnr99/portfolio-hub/internal/session"
)

type Server struct {
	Engine *battle.Engine
	Roster *roster.Roster
	Store  session.Store[battle.State]
	// Pace is the delay between lines on the battle stream.
	Pace time.Duration
}

const cookieName = "battle_sid"

// maxBody caps JSON request bodies.
const maxBody = 1 << 16

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/roster", s.handleRoster)

	mux.HandleFunc("/battle", s.handleBattle)
	mux.HandleFunc("/battle/start", s.handleStart)
	mux.HandleFunc("/battle/move", s.handleMove)
	mux.HandleFunc("/battle/switch", s.handleSwitch)
	mux.HandleFunc("/battle/reset", s.handleReset)

	mux.HandleFunc("/battle/stream", s.handleStream)
	mux.HandleFunc("/battle/report.pdf", s.handleReport)
	return logRequests(mux)
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// ensureSession returns the caller's session ID, issuing a cookie if needed.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id := s.sessionID(r); id != "" {
		return id
	}
	id := s.Store.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// errNoBattle means the caller has no battle in progress or finished.
var errNoBattle = errors.New("no battle for this session")

// errBadRequest marks malformed client input.
var errBadRequest = errors.New("bad request")

func (s *Server) currentBattle(r *http.Request) (battle.State, string, error) {
	id := s.sessionID(r)
	if id == "" {
		return battle.State{}, "", errNoBattle
	}
	st, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		return battle.State{}, "", err
	}
	if !ok {
		return battle.State{}, "", errNoBattle
	}
	return st, id, nil
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("error writing response: %v", err)
	}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, battle.ErrInvalidMove),
		errors.Is(err, battle.ErrInvalidSwitch),
		errors.Is(err, battle.ErrTeamSize),
		errors.Is(err, roster.ErrNotFound),
		errors.Is(err, roster.ErrIneligible):
		return http.StatusBadRequest
	case errors.Is(err, errNoBattle), errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, battle.ErrBattleOver), errors.Is(err, battle.ErrMustSwitch):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		msg = "internal error"
	}
	writeJSON(w, code, errorBody{Error: msg})
}
