package eventbus_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/pkg/eventbus"
)

type setDeleted struct {
	SetID int64
}

func TestPublishDispatchesByType(t *testing.T) {
	bus := eventbus.NewEventPublisher(logrus.New())

	var got []int64
	bus.Subscribe(func(e setDeleted) {
		got = append(got, e.SetID)
	})
	bus.Subscribe(func(e string) {
		t.Fatal("string handler must not fire for setDeleted")
	})

	bus.Publish(setDeleted{SetID: 7})
	require.Equal(t, []int64{7}, got)
	require.Equal(t, 2, bus.SubscribersCount())
}

func TestUnsubscribeAndClear(t *testing.T) {
	bus := eventbus.NewEventPublisher(logrus.New())

	calls := 0
	handler := func(e setDeleted) { calls++ }
	bus.Subscribe(handler)

	bus.Publish(setDeleted{SetID: 1})
	bus.Unsubscribe(handler)
	bus.Publish(setDeleted{SetID: 2})
	require.Equal(t, 1, calls)

	bus.Subscribe(handler)
	bus.Clear()
	require.Equal(t, 0, bus.SubscribersCount())
}
