package middleware

import (
	"fmt"
	"net/http"
)

// Stage identifies a pipeline position. Stages must appear in strictly
// ascending order and without gaps in their prerequisites: rehydration needs
// a resolved session, enforcement needs a rehydration attempt.
type Stage uint8

const (
	StageResolve Stage = iota + 1
	StageRehydrate
	StageGuard
)

func (s Stage) String() string {
	switch s {
	case StageResolve:
		return "resolve"
	case StageRehydrate:
		return "rehydrate"
	case StageGuard:
		return "guard"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// Middleware is one pipeline stage. Wrap returns a handler that runs the
// stage and then, unless it short-circuits, the next handler.
type Middleware interface {
	Stage() Stage
	Wrap(next http.Handler) http.Handler
}

// Chain is a validated, ordered middleware pipeline.
type Chain struct {
	stages []Middleware
}

// NewChain validates ordering and prerequisites at construction so that
// chain order is an invariant of the value, not a property of call-site
// discipline. Rules: stages strictly ascending, no duplicates; StageRehydrate
// requires StageResolve before it; StageGuard requires StageRehydrate.
func NewChain(stages ...Middleware) (*Chain, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("empty middleware chain")
	}

	seen := map[Stage]bool{}
	last := Stage(0)
	for _, m := range stages {
		s := m.Stage()
		if s < StageResolve || s > StageGuard {
			return nil, fmt.Errorf("unknown middleware stage %d", uint8(s))
		}
		if seen[s] {
			return nil, fmt.Errorf("duplicate %s stage", s)
		}
		if s <= last {
			return nil, fmt.Errorf("%s stage out of order", s)
		}
		seen[s] = true
		last = s
	}

	if seen[StageRehydrate] && !seen[StageResolve] {
		return nil, fmt.Errorf("rehydrate stage requires resolve stage")
	}
	if seen[StageGuard] && !seen[StageRehydrate] {
		return nil, fmt.Errorf("guard stage requires rehydrate stage")
	}

	return &Chain{stages: stages}, nil
}

// MustChain is NewChain for static pipelines; it panics on a construction
// error.
func MustChain(stages ...Middleware) *Chain {
	c, err := NewChain(stages...)
	if err != nil {
		panic(err)
	}
	return c
}

// Then wraps h with the chain, outermost stage first.
func (c *Chain) Then(h http.Handler) http.Handler {
	for i := len(c.stages) - 1; i >= 0; i-- {
		h = c.stages[i].Wrap(h)
	}
	return h
}

// ThenFunc is Then for plain handler functions.
func (c *Chain) ThenFunc(f http.HandlerFunc) http.Handler {
	return c.Then(f)
}
