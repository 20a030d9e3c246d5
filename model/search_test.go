package model

import (
	"context"
	"errors"
	"testing"

	"vozdalei/api"
	"vozdalei/model/testutil"
)

func TestLegislationSearch(t *testing.T) {
	s := NewLegislationSearch()
	ctx := context.Background()

	if _, err := s.Begin(ctx, "  "); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("empty query: got %v", err)
	}

	s.SetFilters(testutil.SampleFilters())
	if got := s.CycleStatus(); got != "Em tramitação" {
		t.Errorf("first status: got %q", got)
	}

	q, err := s.Begin(ctx, "internet")
	if err != nil {
		t.Fatal(err)
	}
	if q.Request.Filters == nil || q.Request.Filters.Status != "Em tramitação" {
		t.Errorf("filters: got %+v", q.Request.Filters)
	}
	if q.Request.Page != 1 || q.Request.PageSize != 20 {
		t.Errorf("paging: got %+v", q.Request)
	}

	// a newer query supersedes the first one
	q2, _ := s.Begin(ctx, "saúde")
	if q.Ctx.Err() == nil {
		t.Error("superseded query should be cancelled")
	}
	if s.Succeed(q.ID, &api.SearchResponse{Total: 9}) {
		t.Error("stale result should be dropped")
	}
	if !s.Succeed(q2.ID, &api.SearchResponse{Total: 1}) || s.Results().Total != 1 {
		t.Errorf("results: got %+v", s.Results())
	}

	q3, _ := s.Begin(ctx, "transporte")
	s.Fail(q3.ID, testutil.NetworkDown())
	if s.Results() != nil || s.Err() == "" {
		t.Errorf("failure should clear results and set an error")
	}

	s.Reset()
	if s.Pending() || s.Err() != "" {
		t.Error("reset should go back to idle")
	}
}

func TestCycleStatusWraps(t *testing.T) {
	s := NewLegislationSearch()
	if got := s.CycleStatus(); got != "" {
		t.Errorf("without filters: got %q", got)
	}

	s.SetFilters(&api.SearchFilters{Status: []string{"Aprovado"}})
	if got := s.CycleStatus(); got != "Aprovado" {
		t.Errorf("got %q", got)
	}
	if got := s.CycleStatus(); got != "" {
		t.Errorf("should wrap to any, got %q", got)
	}
}
