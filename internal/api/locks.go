package api

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

const sessionLockStripes = 64

// sessionLocks serialises read-modify-write cycles on one session within
// this process. Sessions share a stripe when their ids hash together.
// Stores shared by several instances are not covered.
type sessionLocks struct {
	stripes [sessionLockStripes]sync.Mutex
}

func (l *sessionLocks) lock(id string) func() {
	mu := &l.stripes[xxhash.Sum64String(id)%sessionLockStripes]
	mu.Lock()
	return mu.Unlock
}
