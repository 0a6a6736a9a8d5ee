package model

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestOfferActive(t *testing.T) {
    now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

    o := Offer{Quantity: 1, PickupEnd: now.Add(time.Hour)}
    assert.True(t, o.Active(now))

    // Quantity zero is never active.
    o = Offer{Quantity: 0, PickupEnd: now.Add(time.Hour)}
    assert.False(t, o.Active(now))

    // A pickup window ending exactly now is still active; one moment
    // past it is not.
    o = Offer{Quantity: 1, PickupEnd: now}
    assert.True(t, o.Active(now))
    o = Offer{Quantity: 1, PickupEnd: now.Add(-time.Second)}
    assert.False(t, o.Active(now))
}
