package services

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub fans countdown and completion events out to the websocket clients
// watching a quiz session. A session usually has a single watcher (the
// student's open tab), but nothing prevents a second tab.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	quiz       *QuizService
	mutex      sync.RWMutex
}

type Client struct {
	hub       *Hub
	id        string
	socket    *websocket.Conn
	send      chan []byte
	sessionID string
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// BindQuizService gives the hub access to session state for sync requests.
// Called once during wiring; the hub and the quiz service reference each
// other.
func (h *Hub) BindQuizService(quiz *QuizService) {
	h.quiz = quiz
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client %s registered for quiz session %s - Total clients: %d", client.id, client.sessionID, len(h.clients))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client %s unregistered from quiz session %s - Total clients: %d", client.id, client.sessionID, len(h.clients))
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastToSession sends an event to every client watching a session.
func (h *Hub) BroadcastToSession(sessionID string, messageType string, payload interface{}) {
	message := Message{
		Type:    messageType,
		Payload: payload,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling %s message: %v", messageType, err)
		return
	}

	h.mutex.Lock()
	for client := range h.clients {
		if client.sessionID != sessionID {
			continue
		}
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
	h.mutex.Unlock()
}

func (h *Hub) RegisterClient(conn *websocket.Conn, sessionID string) *Client {
	client := &Client{
		hub:       h,
		id:        uuid.NewString(),
		socket:    conn,
		send:      make(chan []byte, 256),
		sessionID: sessionID,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

// sendStateSync pushes the current session snapshot to one client.
func (h *Hub) sendStateSync(client *Client) {
	if h.quiz == nil {
		return
	}
	session, ok := h.quiz.SessionByID(client.sessionID)
	if !ok {
		return
	}

	message := Message{
		Type:    "session_state_sync",
		Payload: session.State(),
	}
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling session state sync message: %v", err)
		return
	}

	select {
	case client.send <- data:
	default:
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer c.socket.Close()

	for message := range c.send {
		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "ping":
		response := Message{Type: "pong", Payload: "pong"}
		data, _ := json.Marshal(response)
		c.send <- data

	case "request_state":
		c.hub.sendStateSync(c)

	default:
		log.Printf("Unknown message type %q from client %s (session %s)", msg.Type, c.id, c.sessionID)
	}
}
