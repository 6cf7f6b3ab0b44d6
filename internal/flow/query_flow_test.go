package flow_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ainoggo/internal/apiclient"
	"ainoggo/internal/config"
	"ainoggo/internal/domain"
	"ainoggo/internal/flow"
	"ainoggo/mocks"
)

func await[T any](t *testing.T, ch <-chan flow.State[T]) (flow.State[T], bool) {
	t.Helper()
	select {
	case st, ok := <-ch:
		return st, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for flow completion")
		return flow.State[T]{}, false
	}
}

func TestQueryFlow_Submit_Success(t *testing.T) {
	api := new(mocks.MockAnalysisAPI)
	want := &domain.QueryResult{Success: true, Question: "Can my landlord evict me?", CaseType: "property", Answer: "Only with notice."}
	api.On("SubmitQuery", mock.Anything, domain.QueryRequest{Question: "Can my landlord evict me?", CaseType: domain.CaseTypeProperty}).
		Return(want, nil).Once()

	f := flow.NewQueryFlow(api)
	defer f.Close()
	f.SetQuestion("Can my landlord evict me?")
	require.NoError(t, f.SetCaseType(domain.CaseTypeProperty))

	st, ok := await(t, f.Submit())

	require.True(t, ok)
	assert.Equal(t, flow.StatusSucceeded, st.Status)
	assert.Equal(t, want, st.Result)
	assert.Empty(t, st.Error)
	assert.Equal(t, st, f.State())
	api.AssertExpectations(t)
}

func TestQueryFlow_Submit_BlankQuestion(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n "} {
		api := new(mocks.MockAnalysisAPI)
		f := flow.NewQueryFlow(api)
		f.SetQuestion(q)

		ch := f.Submit()

		// The failure is already in place when Submit returns.
		assert.Equal(t, flow.StatusFailed, f.State().Status)
		st, ok := await(t, ch)
		require.True(t, ok)
		assert.Equal(t, "enter your question", st.Error)
		assert.Equal(t, domain.ErrorKindValidation, st.Kind)
		assert.Nil(t, st.Result)
		api.AssertNotCalled(t, "SubmitQuery", mock.Anything, mock.Anything)
		f.Close()
	}
}

func TestQueryFlow_Submit_StatusError(t *testing.T) {
	api := new(mocks.MockAnalysisAPI)
	api.On("SubmitQuery", mock.Anything, mock.Anything).
		Return(nil, &apiclient.StatusError{Endpoint: "/api/query", StatusCode: 500})

	f := flow.NewQueryFlow(api)
	defer f.Close()
	f.SetQuestion("q")

	st, _ := await(t, f.Submit())

	assert.Equal(t, flow.StatusFailed, st.Status)
	assert.Equal(t, "error occurred: 500", st.Error)
	assert.Contains(t, st.Error, "500")
	assert.Equal(t, domain.ErrorKindHTTPStatus, st.Kind)
}

func TestQueryFlow_Submit_TransportError(t *testing.T) {
	api := new(mocks.MockAnalysisAPI)
	api.On("SubmitQuery", mock.Anything, mock.Anything).
		Return(nil, &url.Error{Op: "Post", URL: "http://backend/api/query", Err: errors.New("connection refused")})

	f := flow.NewQueryFlow(api)
	defer f.Close()
	f.SetQuestion("q")

	st, _ := await(t, f.Submit())

	assert.Equal(t, `connection error: Post "http://backend/api/query": connection refused`, st.Error)
	assert.Equal(t, domain.ErrorKindTransport, st.Kind)
}

func TestQueryFlow_Submit_ParseError(t *testing.T) {
	api := new(mocks.MockAnalysisAPI)
	api.On("SubmitQuery", mock.Anything, mock.Anything).
		Return(nil, &apiclient.DecodeError{Endpoint: "/api/query", Err: errors.New("missing success field")})

	f := flow.NewQueryFlow(api)
	defer f.Close()
	f.SetQuestion("q")

	st, _ := await(t, f.Submit())

	assert.Equal(t, flow.StatusFailed, st.Status)
	assert.Equal(t, domain.ErrorKindParse, st.Kind)
	assert.Contains(t, st.Error, "missing success field")
}

func TestQueryFlow_AgainstBackend(t *testing.T) {
	var mu sync.Mutex
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		_, _ = w.Write([]byte(`{"success":true,"question":"q","case_type":"general","answer":"a"}`))
	}))
	defer server.Close()

	f := flow.NewQueryFlow(apiclient.NewClient(&config.APIConfig{BaseURL: server.URL}))
	defer f.Close()
	f.SetQuestion("q")

	st, _ := await(t, f.Submit())

	assert.Equal(t, flow.StatusSucceeded, st.Status)
	assert.Equal(t, "a", st.Result.Answer)
	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()
}

func TestQueryFlow_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	f := flow.NewQueryFlow(apiclient.NewClient(&config.APIConfig{BaseURL: base}))
	defer f.Close()
	f.SetQuestion("q")

	st, _ := await(t, f.Submit())

	assert.Equal(t, flow.StatusFailed, st.Status)
	assert.Equal(t, domain.ErrorKindTransport, st.Kind)
	assert.Contains(t, st.Error, "connection error: ")
	assert.Contains(t, st.Error, "connection refused")
}

func TestQueryFlow_ResetAfterTerminal(t *testing.T) {
	api := new(mocks.MockAnalysisAPI)
	api.On("SubmitQuery", mock.Anything, mock.Anything).
		Return(&domain.QueryResult{Success: true, Answer: "a"}, nil)

	f := flow.NewQueryFlow(api)
	defer f.Close()
	f.SetQuestion("q")
	require.NoError(t, f.SetCaseType(domain.CaseTypeCriminal))
	_, _ = await(t, f.Submit())

	f.Reset()

	assert.Equal(t, "", f.Question())
	assert.Equal(t, flow.QueryState{Status: flow.StatusIdle}, f.State())
	assert.Equal(t, domain.CaseTypeCriminal, f.CaseType())

	// Reset after a validation failure as well.
	_, _ = await(t, f.Submit())
	f.Reset()
	assert.Equal(t, flow.QueryState{Status: flow.StatusIdle}, f.State())
}

func TestQueryFlow_SetCaseType(t *testing.T) {
	f := flow.NewQueryFlow(new(mocks.MockAnalysisAPI))
	defer f.Close()

	assert.Equal(t, domain.CaseTypeGeneral, f.CaseType())
	assert.NoError(t, f.SetCaseType(domain.CaseTypeBusiness))
	err := f.SetCaseType("maritime")
	assert.True(t, errors.Is(err, domain.ErrInvalidCaseType))
	assert.Equal(t, domain.CaseTypeBusiness, f.CaseType())
}

func TestQueryFlow_NewSubmitCancelsPrevious(t *testing.T) {
	api := new(mocks.MockAnalysisAPI)
	api.On("SubmitQuery", mock.Anything, domain.QueryRequest{Question: "first", CaseType: domain.CaseTypeGeneral}).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.Canceled)
	api.On("SubmitQuery", mock.Anything, domain.QueryRequest{Question: "second", CaseType: domain.CaseTypeGeneral}).
		Return(&domain.QueryResult{Success: true, Question: "second", Answer: "latest"}, nil)

	f := flow.NewQueryFlow(api)
	defer f.Close()

	f.SetQuestion("first")
	first := f.Submit()
	f.SetQuestion("second")
	second := f.Submit()

	_, ok := await(t, first)
	assert.False(t, ok, "superseded submission yields no state")

	st, ok := await(t, second)
	require.True(t, ok)
	assert.Equal(t, "latest", st.Result.Answer)
	assert.Equal(t, flow.StatusSucceeded, f.State().Status)
}

func TestQueryFlow_InFlightClearsPreviousResult(t *testing.T) {
	release := make(chan struct{})
	api := new(mocks.MockAnalysisAPI)
	api.On("SubmitQuery", mock.Anything, domain.QueryRequest{Question: "one", CaseType: domain.CaseTypeGeneral}).
		Return(&domain.QueryResult{Success: true, Answer: "1"}, nil)
	api.On("SubmitQuery", mock.Anything, domain.QueryRequest{Question: "two", CaseType: domain.CaseTypeGeneral}).
		Run(func(args mock.Arguments) { <-release }).
		Return(&domain.QueryResult{Success: true, Answer: "2"}, nil)

	f := flow.NewQueryFlow(api)
	defer f.Close()
	f.SetQuestion("one")
	_, _ = await(t, f.Submit())

	f.SetQuestion("two")
	ch := f.Submit()

	assert.Equal(t, flow.QueryState{Status: flow.StatusInFlight}, f.State())
	close(release)
	st, _ := await(t, ch)
	assert.Equal(t, "2", st.Result.Answer)
}

func TestQueryFlow_ResetDropsInFlightCompletion(t *testing.T) {
	release := make(chan struct{})
	api := new(mocks.MockAnalysisAPI)
	api.On("SubmitQuery", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { <-release }).
		Return(&domain.QueryResult{Success: true, Answer: "late"}, nil)

	f := flow.NewQueryFlow(api)
	defer f.Close()
	f.SetQuestion("q")
	ch := f.Submit()

	f.Reset()
	close(release)

	_, ok := await(t, ch)
	assert.False(t, ok)
	assert.Equal(t, flow.QueryState{Status: flow.StatusIdle}, f.State())
}

func TestQueryFlow_Subscribe(t *testing.T) {
	api := new(mocks.MockAnalysisAPI)
	api.On("SubmitQuery", mock.Anything, mock.Anything).
		Return(&domain.QueryResult{Success: true, Answer: "a"}, nil)

	f := flow.NewQueryFlow(api)
	defer f.Close()

	var mu sync.Mutex
	var seen []flow.Status
	unsubscribe := f.Subscribe(func(st flow.QueryState) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, st.Status)
	})

	f.SetQuestion("q")
	_, _ = await(t, f.Submit())
	f.Reset()
	unsubscribe()
	f.Reset()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []flow.Status{flow.StatusInFlight, flow.StatusSucceeded, flow.StatusIdle}, seen)
}

func TestQueryFlow_Close(t *testing.T) {
	api := new(mocks.MockAnalysisAPI)
	f := flow.NewQueryFlow(api)
	f.Close()
	f.SetQuestion("q")

	_, ok := await(t, f.Submit())

	assert.False(t, ok)
	api.AssertNotCalled(t, "SubmitQuery", mock.Anything, mock.Anything)
}
