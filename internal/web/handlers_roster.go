package web

import "net/http"

// GET /roster
func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	pool, err := s.Roster.Pool(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]SpeciesView, len(pool))
	for i, sp := range pool {
		out[i] = newSpeciesView(sp)
	}
	writeJSON(w, http.StatusOK, out)
}
