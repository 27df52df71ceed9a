package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueEnqueueDequeueFIFO(t *testing.T) {
	q := newQueue(2)
	assert.True(t, q.enqueue([]float32{1}))
	assert.True(t, q.enqueue([]float32{2}))

	got, ok := q.dequeue()
	assert.True(t, ok)
	assert.Equal(t, []float32{1}, got)
}

func TestQueueDropsNewestWhenFull(t *testing.T) {
	q := newQueue(1)
	assert.True(t, q.enqueue([]float32{1}))
	assert.False(t, q.enqueue([]float32{2}))
	assert.Equal(t, 1, q.len())

	got, ok := q.dequeue()
	assert.True(t, ok)
	assert.Equal(t, []float32{1}, got)
}

func TestQueueCloseWakesConsumer(t *testing.T) {
	q := newQueue(2)
	done := make(chan bool)
	go func() {
		_, ok := q.dequeue()
		done <- ok
	}()
	q.close()
	assert.False(t, <-done)
}

func TestQueueDrain(t *testing.T) {
	q := newQueue(2)
	q.enqueue([]float32{1})
	q.drain()
	assert.Equal(t, 0, q.len())
}

func TestQueueEnqueueAfterCloseFails(t *testing.T) {
	q := newQueue(2)
	q.close()
	assert.False(t, q.enqueue([]float32{1}))
}
