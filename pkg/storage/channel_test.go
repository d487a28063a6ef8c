package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannel(t *testing.T) {
	var channel Channel[string]

	// No listeners
	channel.Emit("dropped")
	assert.Equal(t, 0, channel.Len())

	var first, second []string
	unsubscribeFirst := channel.Subscribe(func(v string) { first = append(first, v) })
	channel.Subscribe(func(v string) { second = append(second, v) })
	assert.Equal(t, 2, channel.Len())

	channel.Emit("a")
	unsubscribeFirst()
	unsubscribeFirst()
	channel.Emit("b")

	assert.Equal(t, []string{"a"}, first)
	assert.Equal(t, []string{"a", "b"}, second)
	assert.Equal(t, 1, channel.Len())
}

func TestChannelOrderAndReentrancy(t *testing.T) {
	channel := NewChannel[int]()

	var order []string
	var late []int
	channel.Subscribe(func(v int) {
		order = append(order, "first")
		// Subscribing while emitting only affects later emits
		channel.Subscribe(func(v int) { late = append(late, v) })
	})
	channel.Subscribe(func(int) { order = append(order, "second") })

	channel.Emit(1)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Empty(t, late)

	channel.Emit(2)
	assert.Equal(t, []int{2}, late)
}
