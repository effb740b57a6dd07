package internal

import (
	"hash/fnv"
	"sync"
)

const keyedMutexStripes = 64

// KeyedMutex serializes operations per key with a fixed set of striped
// locks. Two different keys may share a stripe (coarser serialization is
// acceptable); one key always maps to the same stripe. The zero value is
// ready to use.
type KeyedMutex struct {
	stripes [keyedMutexStripes]sync.Mutex
}

// Lock acquires the stripe for key and returns the matching unlock func.
func (m *KeyedMutex) Lock(key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	stripe := &m.stripes[h.Sum32()%keyedMutexStripes]

	stripe.Lock()
	return stripe.Unlock
}
