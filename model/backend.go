package model

import (
	"context"

	"vozdalei/api"
)

// Backend abstracts the Voz da Lei HTTP API.
//
// The interface lives in the model package so tests can swap in a mock without
// a running backend. *api.Client implements it.
type Backend interface {
	SendMessage(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
	GetSuggestions(ctx context.Context) ([]string, error)
	Simplify(ctx context.Context, req api.SimplificationRequest) (*api.SimplificationResponse, error)
	Search(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error)
	Autocomplete(ctx context.Context, q string) ([]string, error)
	Filters(ctx context.Context) (*api.SearchFilters, error)

	// Ping checks if the backend is reachable.
	Ping(ctx context.Context) error

	BaseURL() string
}

var _ Backend = (*api.Client)(nil)
