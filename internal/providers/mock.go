package providers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const MockName = "mock"

// MockStub maps a prompt fingerprint (substring match) to a canned response.
type MockStub struct {
	// Match is a substring that identifies the prompt. The first stub whose
	// Match is contained in the prompt wins. Empty matches everything.
	Match string

	// Responses are returned in order on successive matching calls; the
	// last entry repeats once exhausted.
	Responses []string

	// Err, when non-nil, is returned instead of a response.
	Err error
}

// MockGenerator is a deterministic TextGenerator for tests. Responses are
// keyed by prompt fingerprint so retry/fallback ladders can be exercised
// without a live network dependency.
type MockGenerator struct {
	mu    sync.Mutex
	stubs []*MockStub
	hits  map[*MockStub]int

	// Configurable behavior
	Latency     time.Duration
	ShouldFail  bool
	FailAfter   int    // Fail all requests after N calls (0 = never)
	DefaultText string // Returned when no stub matches

	// State
	requestCount atomic.Int64
	prompts      []string
}

// NewMockGenerator creates a mock with sensible defaults.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		DefaultText: "mock response",
		hits:        make(map[*MockStub]int),
	}
}

// Stub registers a canned response for prompts containing match.
func (m *MockGenerator) Stub(match string, responses ...string) *MockGenerator {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, &MockStub{Match: match, Responses: responses})
	return m
}

// StubErr registers a canned error for prompts containing match.
func (m *MockGenerator) StubErr(match string, err error) *MockGenerator {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, &MockStub{Match: match, Err: err})
	return m
}

// Name returns the provider identifier.
func (m *MockGenerator) Name() string {
	return MockName
}

// Calls returns the number of Generate calls made.
func (m *MockGenerator) Calls() int {
	return int(m.requestCount.Load())
}

// CallsMatching returns how many recorded prompts contain the substring.
func (m *MockGenerator) CallsMatching(match string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.prompts {
		if strings.Contains(p, match) {
			n++
		}
	}
	return n
}

// Prompts returns a copy of all prompts seen so far.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Generate returns the stubbed response for the prompt.
func (m *MockGenerator) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	count := m.requestCount.Add(1)
	start := time.Now()

	if m.Latency > 0 {
		select {
		case <-time.After(m.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	m.prompts = append(m.prompts, req.Prompt)
	stub := m.match(req.Prompt)
	var text string
	var stubErr error
	if stub != nil {
		stubErr = stub.Err
		if stubErr == nil {
			i := m.hits[stub]
			m.hits[stub]++
			if i >= len(stub.Responses) {
				i = len(stub.Responses) - 1
			}
			if i >= 0 {
				text = stub.Responses[i]
			}
		}
	} else {
		text = m.DefaultText
	}
	m.mu.Unlock()

	if m.ShouldFail || (m.FailAfter > 0 && count > int64(m.FailAfter)) {
		return nil, fmt.Errorf("mock generator configured to fail")
	}
	if stubErr != nil {
		return nil, stubErr
	}

	return &GenerateResult{
		Text:          text,
		Provider:      MockName,
		ModelUsed:     "mock-model",
		RequestID:     fmt.Sprintf("mock-%d", count),
		Attempts:      1,
		ExecutionTime: time.Since(start),
	}, nil
}

func (m *MockGenerator) match(prompt string) *MockStub {
	for _, s := range m.stubs {
		if s.Match == "" || strings.Contains(prompt, s.Match) {
			return s
		}
	}
	return nil
}
