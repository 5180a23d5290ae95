package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_TypedDelivery(t *testing.T) {
	bus := NewBus()

	var auth []AuthChanged
	var notices []Notice
	bus.OnAuthChanged(func(ev AuthChanged) { auth = append(auth, ev) })
	bus.OnNotice(func(n Notice) { notices = append(notices, n) })

	bus.Publish(AuthChanged{SignedIn: true, Name: "kari"})
	bus.Publish(Notice{Level: LevelError, Text: "Couldn’t load venues"})

	assert.Equal(t, []AuthChanged{{SignedIn: true, Name: "kari"}}, auth)
	assert.Equal(t, []Notice{{Level: LevelError, Text: "Couldn’t load venues"}}, notices)
}

func TestBus_OrderAndUnsubscribe(t *testing.T) {
	bus := NewBus()

	var calls []string
	bus.Subscribe(TopicNotice, func(Message) { calls = append(calls, "first") })
	unsub := bus.Subscribe(TopicNotice, func(Message) { calls = append(calls, "second") })
	bus.Subscribe(TopicNotice, func(Message) { calls = append(calls, "third") })

	bus.Publish(Notice{Text: "a"})
	unsub()
	unsub()
	bus.Publish(Notice{Text: "b"})

	assert.Equal(t, []string{"first", "second", "third", "first", "third"}, calls)
}

func TestBus_NilBusDrops(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() { bus.Publish(Notice{Text: "x"}) })
}
