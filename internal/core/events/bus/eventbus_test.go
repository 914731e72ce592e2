package bus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got Event
	_, err := b.Subscribe("contact", func(e Event) error {
		got = e
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("contact", "host", "goal")))
	require.NotNil(t, got)
	require.Equal(t, "goal", got.Data())
	require.Equal(t, "host", got.Source())
}

func TestTopicsIsolation(t *testing.T) {
	b := New()
	count1, count2 := 0, 0
	_, _ = b.SubscribeTopic("agent-1", "contact", func(Event) error { count1++; return nil })
	_, _ = b.SubscribeTopic("agent-2", "contact", func(Event) error { count2++; return nil })

	require.NoError(t, b.PublishToTopic("agent-1", NewEvent("contact", "host", "wall")))
	require.Equal(t, 1, count1)
	require.Equal(t, 0, count2)
}

func TestHandlerErrorsAreJoined(t *testing.T) {
	b := New()
	errA := errors.New("a")
	errB := errors.New("b")
	_, _ = b.Subscribe("x", func(Event) error { return errA })
	_, _ = b.Subscribe("x", func(Event) error { return errB })

	err := b.Publish(NewEvent("x", "src", nil))
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errB)
	require.Equal(t, uint64(1), b.GetMetrics().Errors)
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()
	calls := 0
	sub, err := b.Subscribe("x", func(Event) error { calls++; return nil })
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("x", "src", nil)))
	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, sub.Cancel())
	require.NoError(t, b.Publish(NewEvent("x", "src", nil)))

	require.Equal(t, 1, calls)
	require.False(t, sub.IsActive())
	require.Zero(t, b.GetMetrics().SubscribersActive)
}

func TestPublishAsyncReturnsErrorChannel(t *testing.T) {
	b := New()
	handlerErr := errors.New("fail")
	_, err := b.SubscribeTopic("t", "x", func(Event) error { return handlerErr })
	require.NoError(t, err)

	select {
	case e := <-b.PublishAsync("t", NewEvent("x", "src", nil)):
		require.ErrorIs(t, e, handlerErr)
	case <-time.After(time.Second):
		t.Fatal("async publish did not complete")
	}
}

func TestSubscribeValidation(t *testing.T) {
	b := New()
	_, err := b.Subscribe("x", nil)
	require.ErrorIs(t, err, ErrNilHandler)
	_, err = b.Subscribe("", func(Event) error { return nil })
	require.ErrorIs(t, err, ErrEmptyEventType)
}
