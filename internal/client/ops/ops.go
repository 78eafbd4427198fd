// Package ops tracks the lifecycle of user-initiated operations:
//
//	Idle -> Pending -> Succeeded | Failed -> Idle
//
// A kind of operation cannot be started again while it is Pending, which is
// what disables the corresponding control. There is no retry transition and
// no cancellation.
package ops

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBusy is returned by Begin while the same kind is Pending.
var ErrBusy = errors.New("operation already in progress")

type Kind string

const (
	KindList     Kind = "list"
	KindUpload   Kind = "upload"
	KindDownload Kind = "download"
	KindDelete   Kind = "delete"
	KindActivity Kind = "activity"
	KindShare    Kind = "share"
	KindProfile  Kind = "profile"
)

type Phase int

const (
	Idle Phase = iota
	Pending
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Status is the outcome of a finished operation.
type Status struct {
	Kind  Kind
	Phase Phase
	Err   error
}

type Tracker struct {
	mu      sync.Mutex
	pending map[Kind]bool
	last    map[Kind]Status
}

func NewTracker() *Tracker {
	return &Tracker{pending: map[Kind]bool{}, last: map[Kind]Status{}}
}

// Begin moves kind from Idle to Pending.
func (t *Tracker) Begin(kind Kind) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending[kind] {
		return fmt.Errorf("%s: %w", kind, ErrBusy)
	}
	t.pending[kind] = true
	return nil
}

// Finish records the terminal phase for err and returns kind to Idle.
func (t *Tracker) Finish(kind Kind, err error) Status {
	st := Status{Kind: kind, Phase: Succeeded, Err: err}
	if err != nil {
		st.Phase = Failed
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.pending, kind)
	t.last[kind] = st
	return st
}

// Phase reports Pending while kind runs and Idle otherwise.
func (t *Tracker) Phase(kind Kind) Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending[kind] {
		return Pending
	}
	return Idle
}

// Last returns the most recent terminal status of kind.
func (t *Tracker) Last(kind Kind) (Status, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.last[kind]
	return st, ok
}

// Run wraps fn in Begin/Finish.
func (t *Tracker) Run(kind Kind, fn func() error) Status {
	if err := t.Begin(kind); err != nil {
		return Status{Kind: kind, Phase: Failed, Err: err}
	}
	return t.Finish(kind, fn())
}
