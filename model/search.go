package model

import (
	"context"
	"errors"
	"strings"

	"vozdalei/api"
)

var ErrEmptyQuery = errors.New("search query is empty")

type SearchQuery struct {
	ID      uint64
	Request api.SearchRequest
	Ctx     context.Context
}

// LegislationSearch tracks the backend legislation search offered from the
// publications view. Only the latest query's results are kept.
type LegislationSearch struct {
	seq     uint64
	pending bool
	cancel  context.CancelFunc

	filters   *api.SearchFilters
	statusIdx int // -1 is any status

	results *api.SearchResponse
	err     string
}

func NewLegislationSearch() *LegislationSearch {
	return &LegislationSearch{statusIdx: -1}
}

func (s *LegislationSearch) Pending() bool {
	return s.pending
}

func (s *LegislationSearch) Results() *api.SearchResponse {
	return s.results
}

func (s *LegislationSearch) Err() string {
	return s.err
}

func (s *LegislationSearch) SetFilters(f *api.SearchFilters) {
	s.filters = f
	s.statusIdx = -1
}

// StatusFilter is the selected legislation status, "" for any
func (s *LegislationSearch) StatusFilter() string {
	if s.filters == nil || s.statusIdx < 0 || s.statusIdx >= len(s.filters.Status) {
		return ""
	}
	return s.filters.Status[s.statusIdx]
}

// CycleStatus steps through any, then each status the backend offers
func (s *LegislationSearch) CycleStatus() string {
	if s.filters == nil || len(s.filters.Status) == 0 {
		return ""
	}
	s.statusIdx++
	if s.statusIdx >= len(s.filters.Status) {
		s.statusIdx = -1
	}
	return s.StatusFilter()
}

// Begin starts a new query; a pending one is cancelled and its result ignored
func (s *LegislationSearch) Begin(parent context.Context, query string) (SearchQuery, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchQuery{}, ErrEmptyQuery
	}
	if s.cancel != nil {
		s.cancel()
	}

	s.seq++
	s.pending = true
	s.err = ""
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel

	req := api.SearchRequest{Query: query, Page: 1, PageSize: 20}
	if t := s.StatusFilter(); t != "" {
		req.Filters = &api.SearchFilter{Status: t}
	}
	return SearchQuery{ID: s.seq, Request: req, Ctx: ctx}, nil
}

func (s *LegislationSearch) Succeed(id uint64, resp *api.SearchResponse) bool {
	if !s.pending || id != s.seq {
		return false
	}
	s.results = resp
	s.done()
	return true
}

func (s *LegislationSearch) Fail(id uint64, err error) bool {
	if !s.pending || id != s.seq {
		return false
	}
	s.results = nil
	s.err = api.Normalize(err)
	s.done()
	return true
}

// Reset drops results so the view goes back to the built-in list
func (s *LegislationSearch) Reset() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	s.pending = false
	s.results = nil
	s.err = ""
}

func (s *LegislationSearch) done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.pending = false
}
