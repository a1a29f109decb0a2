package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	actionSelect = "select"
	actionTab    = "tab"
)

// viewEvent is a user interaction forwarded by the browser.
type viewEvent struct {
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
	Tab    string `json:"tab,omitempty"`
}

// viewState is sent after connecting and after every event.
type viewState struct {
	Session string `json:"session"`
	Error   string `json:"error,omitempty"`
	ViewModel
}

// session is one browser's dashboard. Only its read pump touches view.
type session struct {
	id   string
	conn *websocket.Conn
	view *Dashboard
}

type wsHub struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newHub() *wsHub {
	return &wsHub{sessions: make(map[string]*session)}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade error")
		return
	}
	sess := &session{
		id:   uuid.NewString(),
		conn: conn,
		view: NewDashboard(s.fleet, s.stats),
	}
	log.Debug().Str("session", sess.id).Msg("view session opened")

	if err := sess.writeState(nil); err != nil {
		log.Warn().Err(err).Str("session", sess.id).Msg("could not send initial state")
		_ = conn.Close()
		return
	}
	s.hub.add(sess)
	go s.hub.readPump(sess)
}

func (h *wsHub) add(sess *session) {
	h.mu.Lock()
	h.sessions[sess.id] = sess
	h.mu.Unlock()
}

func (h *wsHub) remove(id string) {
	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()
}

func (h *wsHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// closeAll sends a going-away close frame to every session and drops the
// connection. Read pumps exit on their own once the connection is gone.
func (h *wsHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown")
	for id, sess := range h.sessions {
		_ = sess.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = sess.conn.Close()
		delete(h.sessions, id)
	}
}

func (h *wsHub) readPump(sess *session) {
	defer func() {
		h.remove(sess.id)
		_ = sess.conn.Close()
		log.Debug().Str("session", sess.id).Msg("view session closed")
	}()
	for {
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			return
		}
		evErr := sess.apply(data)
		if evErr != nil {
			log.Debug().Err(evErr).Str("session", sess.id).Msg("rejected view event")
		}
		if err := sess.writeState(evErr); err != nil {
			return
		}
	}
}

// apply runs one event against the view. A failed event leaves the view as it was.
func (sess *session) apply(data []byte) error {
	var ev viewEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return errors.Wrap(err, "malformed event")
	}
	switch ev.Action {
	case actionSelect:
		return sess.view.Select(ev.ID)
	case actionTab:
		mode, err := ParsePanelMode(ev.Tab)
		if err != nil {
			return err
		}
		return sess.view.SetMode(mode)
	}
	return errors.Errorf("unknown action %q", ev.Action)
}

func (sess *session) writeState(evErr error) error {
	vm, err := sess.view.View()
	if err != nil {
		return err
	}
	state := viewState{Session: sess.id, ViewModel: vm}
	if evErr != nil {
		state.Error = evErr.Error()
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return sess.conn.WriteMessage(websocket.TextMessage, data)
}
