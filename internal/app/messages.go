package app

import (
	"retrace/internal/types"
)

// List, search, and usage responses carry the request sequence that
// issued them; the model drops any response whose seq is stale.

type sessionsMsg struct {
	seq      int
	sessions []types.SessionSummary
	err      error
}

type projectsMsg struct {
	seq      int
	projects []types.Project
	err      error
}

type sessionDetailMsg struct {
	id     string
	detail *types.SessionDetail
	err    error
}

type searchMsg struct {
	seq     int
	query   string
	results []types.SearchResult
	err     error
}

type usageSummaryMsg struct {
	seq     int
	source  string
	summary *types.UsageSummary
	err     error
}

type usageDetailMsg struct {
	seq    int
	days   int
	detail *types.UsageDetail
	err    error
}

type sessionContextMsg struct {
	id      string
	context string
	err     error
}

type copyExpiredMsg struct {
	id string
}

type prefsSavedMsg struct {
	err error
}
