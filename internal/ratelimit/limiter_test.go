package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowBurstPerKey(t *testing.T) {
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := New(1, 2)
	l.now = func() time.Time { return clock }

	assert.True(t, l.Allow("alice"))
	assert.True(t, l.Allow("alice"))
	assert.False(t, l.Allow("alice"))
	assert.True(t, l.Allow("bob"))

	assert.InDelta(t, time.Second.Seconds(), l.RetryAfter("alice").Seconds(), 0.01)
	assert.Zero(t, l.RetryAfter("carol"))

	clock = clock.Add(time.Second)
	assert.True(t, l.Allow("alice"))
	assert.False(t, l.Allow("alice"))
}

func TestStaleBucketsArePruned(t *testing.T) {
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := New(1, 1)
	l.now = func() time.Time { return clock }

	l.Allow("alice")
	l.Allow("bob")
	assert.Equal(t, 2, l.Len())

	clock = clock.Add(5 * time.Minute)
	l.Allow("bob")

	clock = clock.Add(6 * time.Minute)
	l.Allow("carol")
	assert.Equal(t, 2, l.Len())
}
