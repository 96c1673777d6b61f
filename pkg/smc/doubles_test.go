package smc

import (
	"sync"
	"time"

	"github.com/charlie0129/gosmc"
)

type access struct {
	op  string
	key string
	val []byte
}

// scriptedConn is a Connection double with injectable failures, a
// per-call delay, and a record of every register access.
type scriptedConn struct {
	mu     sync.Mutex
	opens  int
	closes int

	openErr  error
	readErr  map[string]error
	writeErr map[string]error

	// failOnWrite fails the Nth write (1-based) with failErr, once.
	failOnWrite int
	failErr     error
	writeCount  int

	delay    time.Duration
	values   map[string][]byte
	accesses []access
}

func newScriptedConn() *scriptedConn {
	return &scriptedConn{
		readErr:  map[string]error{},
		writeErr: map[string]error{},
		values:   map[string][]byte{},
	}
}

func (s *scriptedConn) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.openErr != nil {
		return s.openErr
	}
	s.opens++
	return nil
}

func (s *scriptedConn) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closes++
	return nil
}

func (s *scriptedConn) Read(key string) (gosmc.SMCVal, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.accesses = append(s.accesses, access{op: "read", key: key})
	if err := s.readErr[key]; err != nil {
		return gosmc.SMCVal{}, err
	}
	return gosmc.SMCVal{Key: key, Bytes: s.values[key]}, nil
}

func (s *scriptedConn) Write(key string, value []byte) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.accesses = append(s.accesses, access{op: "write", key: key, val: append([]byte(nil), value...)})

	s.writeCount++
	if s.failOnWrite > 0 && s.writeCount == s.failOnWrite {
		return s.failErr
	}
	if err := s.writeErr[key]; err != nil {
		return err
	}

	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *scriptedConn) recordedAccesses() []access {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]access(nil), s.accesses...)
}

// countReporter records every diagnostic report.
type countReporter struct {
	mu   sync.Mutex
	msgs []string
}

func (r *countReporter) Report(msg string, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.msgs = append(r.msgs, msg)
}

func (r *countReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.msgs)
}
