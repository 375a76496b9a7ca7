package status

import (
	"sync/atomic"
)

// MaxStringLen caps stored strings, marker payloads can be long
const MaxStringLen = 64

// AtomicString is a lock-free string cell, zero value reads as ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, truncated to MaxStringLen bytes
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

// Load returns the current value
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
