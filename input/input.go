// Package input turns keyboard edges into game key events and fans them out
// to subscribers.
package input

type Key int

const (
	KeyForward Key = iota + 1
	KeyBack
	KeyLeft
	KeyRight
	KeyJump
	KeyResetCamera
)

func (k Key) String() string {
	switch k {
	case KeyForward:
		return "forward"
	case KeyBack:
		return "back"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyJump:
		return "jump"
	case KeyResetCamera:
		return "reset_camera"
	default:
		return "unknown"
	}
}

// Event is a single key edge.
type Event struct {
	Key     Key
	Pressed bool
}

type Handler func(Event)

// Source delivers key events. Subscribe returns a function that removes the
// handler again.
type Source interface {
	Subscribe(h Handler) (unsubscribe func())
}

// Hub is a Source that the frame loop publishes into. Handlers run
// synchronously, in subscription order.
type Hub struct {
	nextID   int
	handlers []subscription
}

type subscription struct {
	id int
	h  Handler
}

func NewHub() *Hub {
	return &Hub{}
}

func (h *Hub) Subscribe(handler Handler) func() {
	if h == nil || handler == nil {
		return func() {}
	}
	h.nextID++
	id := h.nextID
	h.handlers = append(h.handlers, subscription{id: id, h: handler})
	return func() { h.unsubscribe(id) }
}

func (h *Hub) unsubscribe(id int) {
	for i, s := range h.handlers {
		if s.id == id {
			h.handlers = append(h.handlers[:i], h.handlers[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to every current subscriber.
func (h *Hub) Publish(ev Event) {
	if h == nil {
		return
	}
	handlers := append([]subscription(nil), h.handlers...)
	for _, s := range handlers {
		s.h(ev)
	}
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	if h == nil {
		return 0
	}
	return len(h.handlers)
}
