package vulkan

import (
	"github.com/spaghettifunk/vkquad/engine/core"
)

type release struct {
	name string
	fn   func()
}

// releaseStack holds the destroy call of every handle acquired so far.
// Unwinding runs them newest first.
type releaseStack struct {
	items []release
}

func (s *releaseStack) push(name string, fn func()) {
	s.items = append(s.items, release{name: name, fn: fn})
}

func (s *releaseStack) len() int {
	return len(s.items)
}

func (s *releaseStack) unwind() {
	for i := len(s.items) - 1; i >= 0; i-- {
		core.LogDebug("Releasing %s...", s.items[i].name)
		s.items[i].fn()
	}
	s.items = nil
}
