// Package notify is a typed publish/subscribe bus for cross-component
// notifications such as sign-in changes and user-facing notices.
package notify

import "sync"

type Topic string

const (
	TopicAuthChanged Topic = "auth.changed"
	TopicNotice      Topic = "notice"
)

// Message is anything that can travel on the bus.
type Message interface {
	Topic() Topic
}

// AuthChanged is published on sign-in and sign-out.
type AuthChanged struct {
	SignedIn bool
	Name     string
}

func (AuthChanged) Topic() Topic { return TopicAuthChanged }

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a short message meant for the person using the app.
type Notice struct {
	Level Level
	Text  string
}

func (Notice) Topic() Topic { return TopicNotice }

// Bus delivers messages synchronously, in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Topic]map[int]func(Message)
	order  map[Topic][]int
}

func NewBus() *Bus {
	return &Bus{
		subs:  map[Topic]map[int]func(Message){},
		order: map[Topic][]int{},
	}
}

// Subscribe registers fn for topic and returns a function that removes it.
func (b *Bus) Subscribe(topic Topic, fn func(Message)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.subs[topic] == nil {
		b.subs[topic] = map[int]func(Message){}
	}
	b.subs[topic][id] = fn
	b.order[topic] = append(b.order[topic], id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[topic], id)
			ids := b.order[topic]
			for i, x := range ids {
				if x == id {
					b.order[topic] = append(ids[:i:i], ids[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish hands m to every subscriber of its topic. A nil bus drops it.
func (b *Bus) Publish(m Message) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]func(Message), 0, len(b.order[m.Topic()]))
	for _, id := range b.order[m.Topic()] {
		handlers = append(handlers, b.subs[m.Topic()][id])
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(m)
	}
}

// OnAuthChanged subscribes a typed handler to TopicAuthChanged.
func (b *Bus) OnAuthChanged(fn func(AuthChanged)) func() {
	return b.Subscribe(TopicAuthChanged, func(m Message) {
		if ev, ok := m.(AuthChanged); ok {
			fn(ev)
		}
	})
}

// OnNotice subscribes a typed handler to TopicNotice.
func (b *Bus) OnNotice(fn func(Notice)) func() {
	return b.Subscribe(TopicNotice, func(m Message) {
		if n, ok := m.(Notice); ok {
			fn(n)
		}
	})
}
