package app

import (
	"testing"

	"github.com/kastheco/webmon/config"
	"github.com/stretchr/testify/assert"
)

func TestBannerQueuePolicies(t *testing.T) {
	tests := []struct {
		policy     config.BannerPolicy
		wantShown  string
		wantWait   int
		wantPushed bool
	}{
		{policy: config.BannerQueue, wantShown: "first", wantWait: 1, wantPushed: true},
		{policy: config.BannerReplace, wantShown: "second", wantWait: 0, wantPushed: true},
		{policy: config.BannerKeep, wantShown: "first", wantWait: 0, wantPushed: false},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			b := newBannerQueue(tt.policy)
			assert.True(t, b.push("first"), "the first banner is always shown")
			assert.Equal(t, tt.wantPushed, b.push("second"))

			shown, ok := b.current()
			assert.True(t, ok)
			assert.Equal(t, tt.wantShown, shown)
			assert.Equal(t, tt.wantWait, b.waiting())
		})
	}
}

func TestBannerQueueAck(t *testing.T) {
	b := newBannerQueue("")
	b.ack()
	assert.False(t, b.active())

	b.push("a")
	b.push("b")
	b.ack()
	shown, _ := b.current()
	assert.Equal(t, "b", shown)
	b.ack()
	assert.False(t, b.active())
	_, ok := b.current()
	assert.False(t, ok)
	assert.Zero(t, b.waiting())
}
