package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeStage lets the chain be tested without an engine.
type fakeStage struct {
	stage Stage
	trace *[]Stage
}

func (f fakeStage) Stage() Stage { return f.stage }

func (f fakeStage) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.trace != nil {
			*f.trace = append(*f.trace, f.stage)
		}
		next.ServeHTTP(w, r)
	})
}

func TestNewChainAcceptsValidPipelines(t *testing.T) {
	cases := map[string][]Stage{
		"resolve only": {StageResolve},
		"unprotected":  {StageResolve, StageRehydrate},
		"protected":    {StageResolve, StageRehydrate, StageGuard},
	}

	for name, stages := range cases {
		mws := make([]Middleware, len(stages))
		for i, s := range stages {
			mws[i] = fakeStage{stage: s}
		}
		if _, err := NewChain(mws...); err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
	}
}

func TestNewChainRejectsInvalidPipelines(t *testing.T) {
	cases := map[string][]Stage{
		"empty":                     {},
		"guard before resolve":      {StageGuard, StageResolve},
		"rehydrate before resolve":  {StageRehydrate, StageResolve},
		"duplicate resolve":         {StageResolve, StageResolve},
		"rehydrate without resolve": {StageRehydrate},
		"guard without rehydrate":   {StageResolve, StageGuard},
		"guard alone":               {StageGuard},
		"reversed full pipeline":    {StageGuard, StageRehydrate, StageResolve},
		"unknown stage":             {Stage(99)},
	}

	for name, stages := range cases {
		mws := make([]Middleware, len(stages))
		for i, s := range stages {
			mws[i] = fakeStage{stage: s}
		}
		if _, err := NewChain(mws...); err == nil {
			t.Errorf("%s: expected construction error", name)
		}
	}
}

func TestMustChainPanicsOnInvalidOrder(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustChain(fakeStage{stage: StageGuard})
}

func TestChainRunsStagesInDeclaredOrder(t *testing.T) {
	var trace []Stage
	chain, err := NewChain(
		fakeStage{stage: StageResolve, trace: &trace},
		fakeStage{stage: StageRehydrate, trace: &trace},
		fakeStage{stage: StageGuard, trace: &trace},
	)
	if err != nil {
		t.Fatalf("new chain: %v", err)
	}

	handlerRan := false
	h := chain.ThenFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
	})

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !handlerRan {
		t.Fatal("handler did not run")
	}
	want := []Stage{StageResolve, StageRehydrate, StageGuard}
	if len(trace) != len(want) {
		t.Fatalf("expected %d stage executions, got %v", len(want), trace)
	}
	for i, s := range want {
		if trace[i] != s {
			t.Fatalf("stage %d: got %s, want %s", i, trace[i], s)
		}
	}
}

func TestStageString(t *testing.T) {
	if StageResolve.String() != "resolve" || StageRehydrate.String() != "rehydrate" || StageGuard.String() != "guard" {
		t.Fatal("unexpected stage names")
	}
}
