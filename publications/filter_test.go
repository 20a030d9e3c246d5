package publications

import "testing"

func mustCatalog(t *testing.T) []Project {
	t.Helper()
	projects, err := Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	return projects
}

func ids(projects []Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.ID
	}
	return out
}

func TestCatalog(t *testing.T) {
	projects := mustCatalog(t)
	if len(projects) != 4 {
		t.Fatalf("expected 4 projects, got %d", len(projects))
	}

	p := projects[0]
	if p.OriginalNumber != "PL 1234/2024" || p.Category != "Educação" {
		t.Errorf("first project: got %+v", p)
	}
	if p.DisplayDate() != "15/03/2024" {
		t.Errorf("date: got %q", p.DisplayDate())
	}
	for _, p := range projects {
		if len(p.Impacts) != 3 {
			t.Errorf("project %s: expected 3 impacts, got %d", p.ID, len(p.Impacts))
		}
	}

	// callers get their own copy
	projects[0].Title = "changed"
	if again := mustCatalog(t); again[0].Title == "changed" {
		t.Error("Catalog should return a copy")
	}
}

func TestFilter(t *testing.T) {
	projects := mustCatalog(t)

	tests := []struct {
		name     string
		term     string
		category string
		want     []string
	}{
		{"empty term all", "", "all", []string{"1", "2", "3", "4"}},
		{"internet in all", "internet", "all", []string{"1"}},
		{"case insensitive", "INTERNET", "all", []string{"1"}},
		{"empty term health", "", "Saúde", []string{"3"}},
		{"summary match", "ônibus", "all", []string{"2"}},
		{"term and category", "internet", "Saúde", []string{}},
		{"no match", "xyz", "all", []string{}},
		{"category without projects", "", "Segurança", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(projects, tt.term, tt.category))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		status string
		want   Bucket
	}{
		{"Aprovado na Câmara", BucketApproved},
		{"Em análise no Senado", BucketSenate},
		{"Em tramitação", BucketPending},
		{"", BucketPending},
	}

	for _, tt := range tests {
		if got := BucketFor(tt.status); got != tt.want {
			t.Errorf("BucketFor(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestHints(t *testing.T) {
	if hints := Hints(""); len(hints) != 0 {
		t.Errorf("empty term: got %v", hints)
	}

	hints := Hints("educ")
	if len(hints) == 0 || hints[0] != "educação" {
		t.Errorf("educ: got %v", hints)
	}

	if hints := Hints("zzzz"); len(hints) != 0 {
		t.Errorf("zzzz: got %v", hints)
	}

	if hints := Hints("a"); len(hints) > 3 {
		t.Errorf("expected at most 3 hints, got %v", hints)
	}
}

func TestNextCategory(t *testing.T) {
	if got := NextCategory("all"); got != "Educação" {
		t.Errorf("got %q", got)
	}
	if got := NextCategory("Segurança"); got != "all" {
		t.Errorf("should wrap around, got %q", got)
	}
	if got := NextCategory("unknown"); got != "all" {
		t.Errorf("unknown resets, got %q", got)
	}
}

func TestShortTitle(t *testing.T) {
	title := "PL 1234/2024 - Programa de Internet Gratuita em Escolas Públicas"
	if got := ShortTitle(title, 100); got != title {
		t.Errorf("short enough title changed: %q", got)
	}
	if got := ShortTitle(title, 15); got != "PL 1234/2024..." {
		t.Errorf("got %q", got)
	}
}
