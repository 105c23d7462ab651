package socket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/siriassis-creator/Sit-logistics-app/internal/fleetview"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

// Maximum wait for a ping from the client before the read loop gives up.
const pongWait = 30 * time.Second

// ClientMessage is a command from the dashboard: feed subscriptions and
// modal view-state changes.
type ClientMessage struct {
	Action     string `json:"action"`
	Collection string `json:"collection,omitempty"`
	Entity     string `json:"entity,omitempty"`
	ID         string `json:"id,omitempty"`
}

// ServerMessage is a push to the dashboard.
type ServerMessage struct {
	Event      string               `json:"event"`
	Collection string               `json:"collection,omitempty"`
	Documents  []bson.M             `json:"documents,omitempty"`
	Entity     string               `json:"entity,omitempty"`
	Modal      *fleetview.ModalState `json:"modal,omitempty"`
	Message    string               `json:"message,omitempty"`
}

// Session is one connected dashboard: its collection subscriptions and
// its per-entity modal state. All writes to the connection go through
// writeMu; snapshot forwarders and the read loop share it.
type Session struct {
	ID string

	conn    *websocket.Conn
	store   store.Store
	hub     *Hub
	log     *zap.Logger
	modals  *fleetview.ModalController
	writeMu sync.Mutex

	mu   sync.Mutex
	subs map[string]*store.Subscription
	done chan struct{}
}

// NewSession wraps an upgraded connection for a user.
func NewSession(id string, conn *websocket.Conn, st store.Store, hub *Hub, log *zap.Logger) *Session {
	return &Session{
		ID:     id,
		conn:   conn,
		store:  st,
		hub:    hub,
		log:    log,
		modals: fleetview.NewModalController(),
		subs:   make(map[string]*store.Subscription),
		done:   make(chan struct{}),
	}
}

// Run registers the session and drives the read loop until the client
// disconnects. It blocks the calling handler, matching how gin serves
// long-lived upgraded connections.
func (s *Session) Run() {
	s.hub.Register(s)
	defer func() {
		s.hub.Unregister(s.ID)
		s.closeSubscriptions()
		close(s.done)
		s.conn.Close()
	}()

	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPingHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warn("unexpected websocket close",
					zap.String("session", s.ID), zap.Error(err))
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		s.handle(msg)
	}
}

func (s *Session) handle(msg ClientMessage) {
	switch msg.Action {
	case "subscribe":
		s.subscribe(msg.Collection)
	case "unsubscribe":
		s.unsubscribe(msg.Collection)
	case "open_create":
		st := s.modals.OpenCreate(msg.Entity)
		s.sendModal(msg.Entity, st)
	case "open_edit":
		s.openEdit(msg.Entity, msg.ID)
	case "open_detail":
		st := s.modals.OpenDetail(msg.Entity, msg.ID)
		s.sendModal(msg.Entity, st)
	case "close_modal":
		st := s.modals.Close(msg.Entity)
		s.sendModal(msg.Entity, st)
	default:
		s.sendError("unknown action: " + msg.Action)
	}
}

// subscribe starts pushing snapshots for a collection: the current state
// immediately, then the full array again on every change.
func (s *Session) subscribe(collection string) {
	if collection == "" {
		s.sendError("subscribe requires a collection")
		return
	}

	s.mu.Lock()
	if _, ok := s.subs[collection]; ok {
		s.mu.Unlock()
		return
	}
	sub := s.store.Subscribe(collection)
	s.subs[collection] = sub
	s.mu.Unlock()

	docs, err := s.store.Snapshot(context.Background(), collection)
	if err != nil {
		s.log.Warn("initial snapshot failed",
			zap.String("collection", collection), zap.Error(err))
		s.sendError("could not read collection " + collection)
	} else {
		s.pushSnapshot(collection, docs)
	}

	go func() {
		for {
			select {
			case docs, ok := <-sub.C:
				if !ok {
					return
				}
				s.pushSnapshot(collection, docs)
			case <-s.done:
				return
			}
		}
	}()
}

func (s *Session) unsubscribe(collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.subs[collection]; ok {
		sub.Close()
		delete(s.subs, collection)
	}
}

// openEdit seeds the edit form from the record as it currently exists in
// the store. A record that has already vanished opens the form with
// whatever the controller last saw (possibly nothing).
func (s *Session) openEdit(entity, id string) {
	var record map[string]interface{}
	docs, err := s.store.Snapshot(context.Background(), entity)
	if err == nil {
		for _, doc := range docs {
			if doc["_id"] == id {
				record = doc
				break
			}
		}
	}
	st := s.modals.OpenEdit(entity, id, record)
	s.sendModal(entity, st)
}

func (s *Session) pushSnapshot(collection string, docs []bson.M) {
	// keep open edit-form defaults in step with the live record
	asMaps := make([]map[string]interface{}, len(docs))
	for i, d := range docs {
		asMaps[i] = d
	}
	s.modals.Observe(collection, asMaps)

	s.write(ServerMessage{Event: "snapshot", Collection: collection, Documents: docs})
}

func (s *Session) sendModal(entity string, st fleetview.ModalState) {
	s.write(ServerMessage{Event: "modal", Entity: entity, Modal: &st})
}

func (s *Session) sendError(message string) {
	s.write(ServerMessage{Event: "error", Message: message})
}

func (s *Session) write(msg ServerMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(msg); err != nil {
		s.log.Warn("websocket write failed",
			zap.String("session", s.ID), zap.Error(err))
	}
}

func (s *Session) closeSubscriptions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, sub := range s.subs {
		sub.Close()
		delete(s.subs, name)
	}
}
