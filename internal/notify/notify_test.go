package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishSubscribe(t *testing.T) {
	b := NewBus(2)
	b.Notify(Notification{Title: "Deck Created", Description: `Deck "Biology" has been successfully created.`})

	got := <-b.Subscribe()
	assert.Equal(t, "Deck Created", got.Title)
	assert.False(t, got.Destructive)
}

func TestBus_DropsWhenFull(t *testing.T) {
	b := NewBus(1)
	b.Notify(Notification{Title: "one"})
	b.Notify(Notification{Title: "two"}) // buffer full, dropped without blocking

	got := <-b.Subscribe()
	assert.Equal(t, "one", got.Title)

	select {
	case extra := <-b.Subscribe():
		t.Fatalf("expected second notification to be dropped, got %+v", extra)
	default:
	}
}

func TestMulti_FansOut(t *testing.T) {
	a, b := NewBus(1), NewBus(1)
	m := Multi{a, b}
	m.Notify(Notification{Title: "Deck Deleted", Destructive: true})

	got := <-a.Subscribe()
	assert.True(t, got.Destructive)
	got = <-b.Subscribe()
	assert.Equal(t, "Deck Deleted", got.Title)
}
