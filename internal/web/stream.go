package web

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Ragnr99/portfolio-hub/internal/battle"

	"github.com/gorilla/websocket"
)

// pollInterval is how often the stream looks for new log lines.
const pollInterval = 100 * time.Millisecond

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// StreamEvent is one log line pushed over the battle stream.
type StreamEvent struct {
	Index   int            `json:"index"`
	Line    string         `json:"line"`
	Turn    int            `json:"turn"`
	Outcome battle.Outcome `json:"outcome"`
}

// GET /battle/stream?from=N
//
// Replays the battle log from line N, one line per Pace, then keeps
// following the log until the battle ends or the session goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	from := 0
	if v := r.URL.Query().Get("from"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "from must be a non-negative integer"})
			return
		}
		from = n
	}
	_, id, err := s.currentBattle(r)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("websocket upgrade:", err)
		return
	}
	defer conn.Close()

	// Drain client frames so close and ping frames are handled.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ctx := r.Context()
	next := from
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	for {
		st, ok, err := s.Store.Get(ctx, id)
		if err != nil || !ok {
			closeStream(conn, websocket.CloseNormalClosure, "battle reset")
			return
		}
		for ; next < len(st.Log); next++ {
			ev := StreamEvent{Index: next, Line: st.Log[next], Turn: st.Turn, Outcome: st.Outcome}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				log.Println("websocket write:", err)
				return
			}
			if s.Pace > 0 && next+1 < len(st.Log) {
				select {
				case <-time.After(s.Pace):
				case <-closed:
					return
				}
			}
		}
		if st.Outcome != battle.OutcomeOngoing {
			closeStream(conn, websocket.CloseNormalClosure, st.Outcome.String())
			return
		}
		select {
		case <-tick.C:
		case <-closed:
			return
		case <-ctx.Done():
			return
		}
	}
}

func closeStream(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
