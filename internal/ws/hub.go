package ws

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"project-store/internal/metrics"
)

// Project event types pushed to subscribers.
const (
	EventFilesReplaced  = "files_replaced"
	EventProjectRenamed = "project_renamed"
	EventProjectDeleted = "project_deleted"
)

type WsMessage struct {
	Type      string          `json:"type"`
	ProjectID string          `json:"projectId"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type Message struct {
	ProjectID string
	Type      string
	Data      []byte
}

// Hub fans project events out to the clients subscribed to each project.
// All room state is owned by the Run goroutine.
type Hub struct {
	rooms      map[string]map[*Client]struct{} // projectID -> clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	done       chan struct{}
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
		logger:     logger.Named("ws"),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for projectID, room := range h.rooms {
				for client := range room {
					h.drop(projectID, client)
				}
			}
			return

		case client := <-h.register:
			room, ok := h.rooms[client.ProjectID]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[client.ProjectID] = room
			}
			room[client] = struct{}{}
			metrics.WSClientConnected()
			h.logger.Debug("client registered",
				zap.String("project_id", client.ProjectID),
				zap.String("user_id", client.UserID))

		case client := <-h.unregister:
			if room, ok := h.rooms[client.ProjectID]; ok {
				if _, ok := room[client]; ok {
					h.drop(client.ProjectID, client)
				}
			}

		case message := <-h.broadcast:
			room := h.rooms[message.ProjectID]
			for client := range room {
				select {
				case client.send <- message.Data:
				default:
					// Slow consumer; it can reconnect and refetch.
					h.logger.Warn("dropping slow client",
						zap.String("project_id", client.ProjectID),
						zap.String("user_id", client.UserID))
					h.drop(message.ProjectID, client)
				}
			}
			if message.Type == EventProjectDeleted {
				for client := range h.rooms[message.ProjectID] {
					h.drop(message.ProjectID, client)
				}
			}
		}
	}
}

func (h *Hub) drop(projectID string, client *Client) {
	room := h.rooms[projectID]
	delete(room, client)
	close(client.send)
	metrics.WSClientDisconnected()
	if len(room) == 0 {
		delete(h.rooms, projectID)
	}
	h.logger.Debug("client left",
		zap.String("project_id", projectID),
		zap.String("user_id", client.UserID))
}

// Register adds a client to its project room.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister removes a client; unknown clients are ignored.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish sends an event to every subscriber of the project. It never blocks
// on slow clients; once the hub has stopped, events are discarded.
func (h *Hub) Publish(projectID, eventType string, payload any) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			h.logger.Error("encode event payload", zap.String("type", eventType), zap.Error(err))
			return
		}
		raw = data
	}
	data, err := json.Marshal(WsMessage{Type: eventType, ProjectID: projectID, Payload: raw})
	if err != nil {
		h.logger.Error("encode event", zap.String("type", eventType), zap.Error(err))
		return
	}

	select {
	case h.broadcast <- &Message{ProjectID: projectID, Type: eventType, Data: data}:
		metrics.RecordEvent(eventType)
	case <-h.done:
	}
}
