package api

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

type ChatMessage struct {
	ID        string    `json:"id,omitempty"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	AudioURL  string    `json:"audio_url,omitempty"`
}

type ChatRequest struct {
	Message             string        `json:"message"`
	ConversationHistory []ChatMessage `json:"conversation_history"`
	UseAudio            bool          `json:"use_audio"`
}

type ChatResponse struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// TargetLevel is the reading level asked of the simplifier
type TargetLevel string

const (
	LevelSimple    TargetLevel = "simple"
	LevelModerate  TargetLevel = "moderate"
	LevelTechnical TargetLevel = "technical"
)

func (l TargetLevel) Valid() bool {
	switch l {
	case LevelSimple, LevelModerate, LevelTechnical:
		return true
	}
	return false
}

type SimplificationRequest struct {
	Text         string      `json:"text"`
	TargetLevel  TargetLevel `json:"target_level"`
	IncludeAudio bool        `json:"include_audio"`
}

type SimplificationResponse struct {
	SimplifiedText     string  `json:"simplified_text"`
	ReadingTimeMinutes float64 `json:"reading_time_minutes"`
}

type SearchFilter struct {
	Year   int    `json:"year,omitempty"`
	Status string `json:"status,omitempty"`
	Type   string `json:"type,omitempty"`
}

type SearchRequest struct {
	Query    string        `json:"query"`
	Filters  *SearchFilter `json:"filters,omitempty"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// Legislation is one search hit. Identifier holds the Câmara page URL when
// the hit came from the Câmara API.
type Legislation struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	Number     string `json:"number"`
	Year       int    `json:"year"`
	Title      string `json:"title"`
	Summary    string `json:"summary,omitempty"`
	Status     string `json:"status,omitempty"`
	Author     string `json:"author,omitempty"`
	URN        string `json:"urn,omitempty"`
	Identifier string `json:"identifier,omitempty"`
}

type SearchResponse struct {
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Results  []Legislation `json:"results"`
}

type SearchFilters struct {
	Types   []string `json:"types"`
	Years   []int    `json:"years"`
	Sources []string `json:"sources"`
	Status  []string `json:"status"`
}
