// Package publications holds the built-in list of explained legislative
// projects and the client-side filtering over it.
package publications

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

//go:embed projects.json
var projectsJSON []byte

const dateLayout = "2006-01-02"

type Project struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	OriginalNumber    string    `json:"original_number"`
	Summary           string    `json:"summary"`
	SimplifiedSummary string    `json:"simplified_summary"`
	Status            string    `json:"status"`
	Category          string    `json:"category"`
	PublishedAt       time.Time `json:"-"`
	Impacts           []string  `json:"impacts"`
}

// DisplayDate formats the publication date the Brazilian way (dd/mm/yyyy)
func (p Project) DisplayDate() string {
	if p.PublishedAt.IsZero() {
		return ""
	}
	return p.PublishedAt.Format("02/01/2006")
}

func (p *Project) UnmarshalJSON(data []byte) error {
	type alias Project
	aux := struct {
		*alias
		PublishedAt string `json:"published_at"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.PublishedAt == "" {
		return nil
	}

	t, err := time.Parse(dateLayout, aux.PublishedAt)
	if err != nil {
		return fmt.Errorf("project %s: invalid published_at %q: %w", p.ID, aux.PublishedAt, err)
	}
	p.PublishedAt = t
	return nil
}

var (
	loadOnce sync.Once
	projects []Project
	loadErr  error
)

// Catalog returns a copy of the built-in projects
func Catalog() ([]Project, error) {
	loadOnce.Do(func() {
		loadErr = json.Unmarshal(projectsJSON, &projects)
	})
	if loadErr != nil {
		return nil, fmt.Errorf("failed to load projects: %w", loadErr)
	}

	out := make([]Project, len(projects))
	copy(out, projects)
	return out, nil
}
