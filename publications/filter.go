package publications

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
)

const AllCategories = "all"

// EmptyMessage is shown when no project passes the filter
const EmptyMessage = "Nenhum projeto encontrado com os filtros selecionados."

// Categories in display order; "all" disables the category filter
var Categories = []string{AllCategories, "Educação", "Saúde", "Transporte", "Economia", "Segurança"}

// Topics are the common search subjects the backend autocompletes
var Topics = []string{
	"educação",
	"saúde",
	"transporte",
	"meio ambiente",
	"trabalho",
	"previdência",
	"impostos",
	"segurança",
	"cultura",
	"esporte",
}

type Bucket int

const (
	BucketPending Bucket = iota
	BucketApproved
	BucketSenate
)

func BucketFor(status string) Bucket {
	switch status {
	case "Aprovado na Câmara":
		return BucketApproved
	case "Em análise no Senado":
		return BucketSenate
	default:
		return BucketPending
	}
}

func CategoryLabel(category string) string {
	if category == AllCategories {
		return "Todas as áreas"
	}
	return category
}

// Filter keeps projects whose title or simplified summary contains term,
// ignoring case, and whose category matches. Order is preserved.
func Filter(projects []Project, term, category string) []Project {
	needle := strings.ToLower(term)

	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		matchesSearch := strings.Contains(strings.ToLower(p.SimplifiedSummary), needle) ||
			strings.Contains(strings.ToLower(p.Title), needle)
		matchesCategory := category == AllCategories || category == "" || p.Category == category
		if matchesSearch && matchesCategory {
			out = append(out, p)
		}
	}
	return out
}

// Hints returns up to three topics that fuzzily match term
func Hints(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	matches := fuzzy.Find(term, Topics)
	hints := make([]string, 0, 3)
	for _, m := range matches {
		if len(hints) == 3 {
			break
		}
		hints = append(hints, Topics[m.Index])
	}
	return hints
}

// NextCategory cycles through Categories
func NextCategory(current string) string {
	for i, c := range Categories {
		if c == current {
			return Categories[(i+1)%len(Categories)]
		}
	}
	return AllCategories
}

// ShortTitle fits a title into width terminal cells
func ShortTitle(title string, width int) string {
	if width <= 0 || runewidth.StringWidth(title) <= width {
		return title
	}
	return runewidth.Truncate(title, width, "...")
}
