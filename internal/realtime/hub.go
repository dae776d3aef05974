package realtime

import (
	"strconv"
	"sync"
)

// Event describes a change to the bookings table scoped to one
// availability key (vehicle + date). Subscribers re-fetch on receipt;
// events carry no row data.
type Event struct {
	Type      string `json:"type"`
	VehicleID int64  `json:"vehicle_id"`
	Date      string `json:"date"`
}

const EventBookingsChanged = "bookings_changed"

// Hub fans booking-change events out to subscribers. Subscribe returns an
// unsubscribe func; delivery is best effort. A subscriber with a full
// buffer misses the event and catches up on its next re-fetch.
type Hub struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[string]map[int64]chan Event
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[int64]chan Event),
	}
}

func topicKey(vehicleID int64, date string) string {
	return date + "/" + strconv.FormatInt(vehicleID, 10)
}

func (h *Hub) Subscribe(vehicleID int64, date string) (<-chan Event, func()) {
	ch := make(chan Event, 8)
	key := topicKey(vehicleID, date)

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.subs[key] == nil {
		h.subs[key] = make(map[int64]chan Event)
	}
	h.subs[key][id] = ch
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		if m, ok := h.subs[key]; ok {
			if c, ok := m[id]; ok {
				delete(m, id)
				close(c)
			}
			if len(m) == 0 {
				delete(h.subs, key)
			}
		}
		h.mu.Unlock()
	}
	return ch, unsubscribe
}

// BookingsChanged notifies every subscriber watching (vehicleID, date).
// Called by the booking service after each mutation.
func (h *Hub) BookingsChanged(vehicleID int64, date string) {
	ev := Event{Type: EventBookingsChanged, VehicleID: vehicleID, Date: date}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[topicKey(vehicleID, date)] {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *Hub) SubscriberCount(vehicleID int64, date string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topicKey(vehicleID, date)])
}
