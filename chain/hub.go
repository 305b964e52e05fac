package chain

import (
	"context"
	"sync"

	"github.com/openfund/crowdchain/models"
)

type EventType string

const (
	EventCampaignCreated EventType = "campaign_created"
	EventContribution    EventType = "contribution"
	EventWithdrawal      EventType = "withdrawal"
)

// Event is pushed to subscribers after every ledger mutation, so consumers
// are not forced to poll the read endpoints.
type Event struct {
	Type        EventType          `json:"type"`
	Campaign    models.Campaign    `json:"campaign"`
	Transaction models.Transaction `json:"transaction"`
}

const subscriberBuffer = 16

// Hub fans ledger events out to subscribers.
type Hub struct {
	subscribers map[chan Event]bool
	broadcast   chan Event
	register    chan chan Event
	unregister  chan chan Event
	mu          sync.RWMutex
}

func newHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]bool),
		broadcast:   make(chan Event, 256),
		register:    make(chan chan Event),
		unregister:  make(chan chan Event),
	}
}

// Subscribe registers a new event channel. The channel is buffered; a
// subscriber that falls behind misses events rather than blocking the hub.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	h.register <- ch
	return ch
}

// Unsubscribe removes the channel and closes it.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.unregister <- ch
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

func (h *Hub) publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
	}
}

func (h *Hub) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for ch := range h.subscribers {
				delete(h.subscribers, ch)
				close(ch)
			}
			h.mu.Unlock()
			return
		case ch := <-h.register:
			h.mu.Lock()
			h.subscribers[ch] = true
			h.mu.Unlock()
		case ch := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.subscribers[ch]; ok {
				delete(h.subscribers, ch)
				close(ch)
			}
			h.mu.Unlock()
		case event := <-h.broadcast:
			h.mu.RLock()
			for ch := range h.subscribers {
				select {
				case ch <- event:
				default:
				}
			}
			h.mu.RUnlock()
		}
	}
}
