package flow

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"ainoggo/internal/domain"
	"ainoggo/internal/port"
)

// QueryState is the observable state of a QueryFlow.
type QueryState = State[domain.QueryResult]

// QueryFlow submits a legal question with its case type to the backend.
type QueryFlow struct {
	api port.AnalysisAPI
	m   *machine[domain.QueryResult]

	mu       sync.Mutex
	question string
	caseType domain.CaseType
}

// NewQueryFlow creates an idle QueryFlow with the default case type.
func NewQueryFlow(api port.AnalysisAPI) *QueryFlow {
	return &QueryFlow{
		api:      api,
		m:        newMachine[domain.QueryResult](),
		caseType: domain.DefaultCaseType,
	}
}

// Closed reports whether Close has been called.
func (f *QueryFlow) Closed() bool {
	return f.m.isClosed()
}

// SetQuestion replaces the question text.
func (f *QueryFlow) SetQuestion(q string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.question = q
}

// Question returns the current question text.
func (f *QueryFlow) Question() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.question
}

// SetCaseType selects the case type. Unknown values are rejected and leave
// the selection unchanged.
func (f *QueryFlow) SetCaseType(c domain.CaseType) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidCaseType, c)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.caseType = c
	return nil
}

// CaseType returns the selected case type.
func (f *QueryFlow) CaseType() domain.CaseType {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.caseType
}

// State returns a snapshot of the flow state.
func (f *QueryFlow) State() QueryState {
	return f.m.snapshot()
}

// Subscribe registers fn to receive every state transition. The returned
// function removes the subscription.
func (f *QueryFlow) Subscribe(fn func(QueryState)) func() {
	return f.m.subscribe(fn)
}

// Submit sends the current question without blocking. A blank question fails
// immediately and no request is made. The returned channel yields the
// terminal state of this submission, or is closed without a value when the
// submission is superseded by a later Submit, Reset or Close.
func (f *QueryFlow) Submit() <-chan QueryState {
	done := make(chan QueryState, 1)

	f.mu.Lock()
	req := domain.QueryRequest{Question: f.question, CaseType: f.caseType}
	f.mu.Unlock()

	if strings.TrimSpace(req.Question) == "" {
		st, err := f.m.failNow(msgEnterQuestion, domain.ErrorKindValidation)
		if err == nil {
			done <- st
		}
		close(done)
		return done
	}

	ctx, gen, err := f.m.begin(nil)
	if err != nil {
		close(done)
		return done
	}

	go func() {
		defer close(done)

		var st QueryState
		result, err := f.api.SubmitQuery(ctx, req)
		if err != nil {
			msg, kind := classify(err, queryStatusLabel)
			log.Printf("flow.QueryFlow.Submit: case_type=%s failed: %v", req.CaseType, err)
			st = QueryState{Status: StatusFailed, Error: msg, Kind: kind}
		} else {
			st = QueryState{Status: StatusSucceeded, Result: result}
		}

		if f.m.complete(gen, st) {
			done <- st
		}
	}()

	return done
}

// Reset clears the question, result and error. The case type is kept.
func (f *QueryFlow) Reset() {
	f.mu.Lock()
	f.question = ""
	f.mu.Unlock()
	f.m.reset(nil)
}

// Close cancels any in-flight request. Further submissions are ignored.
func (f *QueryFlow) Close() {
	f.m.close(nil)
}
