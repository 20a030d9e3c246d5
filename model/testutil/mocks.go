package testutil

import (
	"context"
	"sync"

	"vozdalei/api"
)

// MockBackend implements model.Backend for testing
type MockBackend struct {
	// Configurable responses
	SendMessageFunc    func(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
	GetSuggestionsFunc func(ctx context.Context) ([]string, error)
	SimplifyFunc       func(ctx context.Context, req api.SimplificationRequest) (*api.SimplificationResponse, error)
	SearchFunc         func(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error)
	AutocompleteFunc   func(ctx context.Context, q string) ([]string, error)
	FiltersFunc        func(ctx context.Context) (*api.SearchFilters, error)
	PingFunc           func(ctx context.Context) error

	mu           sync.Mutex
	chatRequests []api.ChatRequest
	simplified   []api.SimplificationRequest
}

// NewMockBackend creates a mock backend with default implementations
func NewMockBackend() *MockBackend {
	mock := &MockBackend{}
	mock.SendMessageFunc = func(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
		return &api.ChatResponse{Message: "Mock response"}, nil
	}
	mock.GetSuggestionsFunc = func(ctx context.Context) ([]string, error) {
		return []string{"Mock suggestion"}, nil
	}
	mock.SimplifyFunc = func(ctx context.Context, req api.SimplificationRequest) (*api.SimplificationResponse, error) {
		return &api.SimplificationResponse{SimplifiedText: "Texto simples", ReadingTimeMinutes: 0.5}, nil
	}
	mock.SearchFunc = func(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error) {
		return &api.SearchResponse{Page: req.Page, PageSize: req.PageSize}, nil
	}
	mock.AutocompleteFunc = func(ctx context.Context, q string) ([]string, error) {
		return nil, nil
	}
	mock.FiltersFunc = func(ctx context.Context) (*api.SearchFilters, error) {
		return SampleFilters(), nil
	}
	mock.PingFunc = func(ctx context.Context) error {
		return nil
	}
	return mock
}

func (m *MockBackend) SendMessage(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	m.mu.Lock()
	m.chatRequests = append(m.chatRequests, req)
	m.mu.Unlock()
	return m.SendMessageFunc(ctx, req)
}

func (m *MockBackend) GetSuggestions(ctx context.Context) ([]string, error) {
	return m.GetSuggestionsFunc(ctx)
}

func (m *MockBackend) Simplify(ctx context.Context, req api.SimplificationRequest) (*api.SimplificationResponse, error) {
	m.mu.Lock()
	m.simplified = append(m.simplified, req)
	m.mu.Unlock()
	return m.SimplifyFunc(ctx, req)
}

func (m *MockBackend) Search(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error) {
	return m.SearchFunc(ctx, req)
}

func (m *MockBackend) Autocomplete(ctx context.Context, q string) ([]string, error) {
	return m.AutocompleteFunc(ctx, q)
}

func (m *MockBackend) Filters(ctx context.Context) (*api.SearchFilters, error) {
	return m.FiltersFunc(ctx)
}

func (m *MockBackend) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

func (m *MockBackend) BaseURL() string {
	return "http://mock:8000"
}

// ChatRequests returns every chat request received so far
func (m *MockBackend) ChatRequests() []api.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]api.ChatRequest(nil), m.chatRequests...)
}

func (m *MockBackend) SimplifyRequests() []api.SimplificationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]api.SimplificationRequest(nil), m.simplified...)
}
