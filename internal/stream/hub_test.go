package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	h := NewHub[int]()

	var a, b []int
	unsubA := h.Subscribe(func(v int) { a = append(a, v) })
	unsubB := h.Subscribe(func(v int) { b = append(b, v) })
	defer unsubA()
	defer unsubB()

	h.Publish(1)
	h.Publish(2)

	assert.Equal(t, []int{1, 2}, a)
	assert.Equal(t, []int{1, 2}, b)
}

func TestHub_Unsubscribe(t *testing.T) {
	h := NewHub[string]()

	var got []string
	unsub := h.Subscribe(func(v string) { got = append(got, v) })

	h.Publish("one")
	unsub()
	h.Publish("two")

	assert.Equal(t, []string{"one"}, got)
	assert.Equal(t, 0, h.Len())
}

func TestHub_UnsubscribeIdempotent(t *testing.T) {
	h := NewHub[int]()

	unsubA := h.Subscribe(func(int) {})
	unsubB := h.Subscribe(func(int) {})

	unsubA()
	unsubA() // must not touch the other subscription
	assert.Equal(t, 1, h.Len())

	unsubB()
	assert.Equal(t, 0, h.Len())
}

func TestHub_Len(t *testing.T) {
	h := NewHub[int]()
	assert.Equal(t, 0, h.Len())

	unsub := h.Subscribe(func(int) {})
	assert.Equal(t, 1, h.Len())
	unsub()
	assert.Equal(t, 0, h.Len())
}
