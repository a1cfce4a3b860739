package ws

import (
	"encoding/json"
	"sync"

	"github.com/mugangish/shelter-backend/internal/logger"
)

// Hub рассылает события очередей модерации подключённым администраторам.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 32),
	}
}

// Run запускает главный цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case payload := <-h.broadcast:
			h.send(payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// NotifyQueue рассылает событие о пополнении очереди модерации.
// Сообщение следует контракту WebSocket API: поле "type" содержит
// имя события, "data" — полезную нагрузку.
func (h *Hub) NotifyQueue(queue string, data interface{}) {
	payload := map[string]interface{}{
		"type": "queue:" + queue,
		"data": data,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithError(err).Warn("ws: не удалось сериализовать сообщение")
		}
		return
	}

	h.broadcast <- raw
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

func (h *Hub) send(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Медленного клиента отключаем, чтобы не копить очередь
			go client.Close()
		}
	}
}
