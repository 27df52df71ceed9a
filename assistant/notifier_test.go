package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotifierDeliversToAllSubscribers(t *testing.T) {
	n := NewNotifier(0)
	var got1, got2 Event
	n.Subscribe(func(e Event) { got1 = e })
	n.Subscribe(func(e Event) { got2 = e })

	n.Emit(Event{Kind: SpeechDetected})
	assert.Equal(t, SpeechDetected, got1.Kind)
	assert.Equal(t, SpeechDetected, got2.Kind)
}

func TestNotifierThrottlesErrorEvents(t *testing.T) {
	n := NewNotifier(50 * time.Millisecond)
	count := 0
	n.Subscribe(func(e Event) {
		if e.Kind == ErrorEvent {
			count++
		}
	})

	n.Emit(Event{Kind: ErrorEvent, Message: "first"})
	n.Emit(Event{Kind: ErrorEvent, Message: "second"})
	assert.Equal(t, 1, count)

	time.Sleep(60 * time.Millisecond)
	n.Emit(Event{Kind: ErrorEvent, Message: "third"})
	assert.Equal(t, 2, count)
}

func TestNotifierNoThrottleWhenIntervalZero(t *testing.T) {
	n := NewNotifier(0)
	count := 0
	n.Subscribe(func(e Event) { count++ })
	n.Emit(Event{Kind: ErrorEvent})
	n.Emit(Event{Kind: ErrorEvent})
	assert.Equal(t, 2, count)
}
