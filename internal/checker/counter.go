package checker

import "sync"

// counter is a goroutine-safe progress counter.
type counter struct {
	mu sync.Mutex
	n  int
}

// inc increments the counter and returns the new value.
func (c *counter) inc() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.n
}
