package app

import "github.com/kastheco/webmon/config"

// bannerQueue holds the failures waiting to be acknowledged. The head is the
// banner on screen.
type bannerQueue struct {
	policy config.BannerPolicy
	items  []string
}

func newBannerQueue(policy config.BannerPolicy) *bannerQueue {
	if policy == "" {
		policy = config.BannerQueue
	}
	return &bannerQueue{policy: policy}
}

// push adds msg according to the policy. It returns false when msg was
// dropped because another banner is kept on screen.
func (b *bannerQueue) push(msg string) bool {
	if len(b.items) == 0 {
		b.items = append(b.items, msg)
		return true
	}
	switch b.policy {
	case config.BannerReplace:
		b.items = []string{msg}
		return true
	case config.BannerKeep:
		return false
	default:
		b.items = append(b.items, msg)
		return true
	}
}

func (b *bannerQueue) active() bool {
	return len(b.items) > 0
}

// current returns the banner on screen.
func (b *bannerQueue) current() (string, bool) {
	if len(b.items) == 0 {
		return "", false
	}
	return b.items[0], true
}

// waiting is the number of banners behind the current one.
func (b *bannerQueue) waiting() int {
	if len(b.items) == 0 {
		return 0
	}
	return len(b.items) - 1
}

// ack dismisses the current banner and shows the next, if any.
func (b *bannerQueue) ack() {
	if len(b.items) == 0 {
		return
	}
	b.items = b.items[1:]
}
