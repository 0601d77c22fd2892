package model

import "time"

// GenderFilter narrows the rendered buckets.
type GenderFilter string

const (
	GenderAny        GenderFilter = "any"
	GenderOnlyMale   GenderFilter = "male"
	GenderOnlyFemale GenderFilter = "female"
)

// FilterState is the follow-up filter of a session.
type FilterState struct {
	Gender  GenderFilter      `json:"gender"`
	Quality QualityPreference `json:"quality"`
	ListAll bool              `json:"list_all"`
}

// DefaultFilter shows everything, capped.
func DefaultFilter() FilterState {
	return FilterState{Gender: GenderAny, Quality: QualityAny}
}

// Session is the conversational memory of one thread.
type Session struct {
	ThreadID   string             `json:"thread_id"`
	Query      string             `json:"query"`
	Plan       SearchPlan         `json:"plan"`
	Candidates []Candidate        `json:"candidates"`
	Scores     map[string]float64 `json:"scores"`
	UILanguage string             `json:"ui_language"`
	Filter     FilterState        `json:"filter"`
	TopUsage   bool               `json:"top_usage,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// SearchOutcome is the result of running the search pipeline on one message.
type SearchOutcome struct {
	Query      string
	Plan       PlanResult
	TopUsage   bool
	Language   string // language resolved for the top-usage mode
	Candidates []Candidate
	Scores     map[string]float64
	Ranking    RankResult
	UILanguage string
}

// RankResult is the outcome of ranking fusion. Degraded means positional
// scoring was used for the whole list.
type RankResult struct {
	Scores       map[string]float64
	UserLanguage string
	Degraded     bool
	Reason       string
}

// InboundMessage is one mention received from a chat transport.
type InboundMessage struct {
	Text     string
	Channel  string
	TS       string
	ThreadTS string
}

// ThreadID scopes the thread timestamp (or the message timestamp) by channel.
func (m InboundMessage) ThreadID() string {
	ts := m.ThreadTS
	if ts == "" {
		ts = m.TS
	}
	return m.Channel + ":" + ts
}
