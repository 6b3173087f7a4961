package server

import (
	"sync"
	"time"
)

// Stats tracks API usage for the dashboard display.
type Stats struct {
	mu           sync.Mutex
	totalCalls   int64
	lastCallTime time.Time
	lastIP       string
}

// Record counts one API call and returns the new total.
func (s *Stats) Record(ip string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalCalls++
	s.lastCallTime = time.Now()
	s.lastIP = ip
	return s.totalCalls
}

// Snapshot returns the current counters. A zero lastCall means no API
// call has been made yet.
func (s *Stats) Snapshot() (total int64, lastCall time.Time, lastIP string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCalls, s.lastCallTime, s.lastIP
}
