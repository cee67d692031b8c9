package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"retrace/internal/config"
	"retrace/internal/types"
)

type fakeAPI struct {
	sessions []types.SessionSummary
	detail   *types.SessionDetail
	err      error
}

func (f *fakeAPI) ListSessions(ctx context.Context, project, source string) ([]types.SessionSummary, error) {
	return f.sessions, f.err
}

func (f *fakeAPI) GetSession(ctx context.Context, id, source string) (*types.SessionDetail, error) {
	return f.detail, f.err
}

func (f *fakeAPI) SessionContext(ctx context.Context, id, source string) (string, error) {
	return "", f.err
}

func (f *fakeAPI) Search(ctx context.Context, query, source string) ([]types.SearchResult, error) {
	return nil, f.err
}

func (f *fakeAPI) ListProjects(ctx context.Context, source string) ([]types.Project, error) {
	return nil, f.err
}

func (f *fakeAPI) UsageSummary(ctx context.Context, source string) (*types.UsageSummary, error) {
	return &types.UsageSummary{}, f.err
}

func (f *fakeAPI) UsageDetail(ctx context.Context, days int, source string) (*types.UsageDetail, error) {
	return &types.UsageDetail{}, f.err
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(&fakeAPI{}, config.DefaultPreferences(), nil)
	return &m
}

func TestSessionsMsgStaleSeqDiscarded(t *testing.T) {
	m := newTestModel(t)
	m.listSeq = 2

	fresh := []types.SessionSummary{{ID: "new", UpdatedAt: time.Now()}}
	stale := []types.SessionSummary{{ID: "old", UpdatedAt: time.Now()}}

	m.Update(sessionsMsg{seq: 1, sessions: stale})
	if len(m.sessions) != 0 {
		t.Fatalf("stale response must be discarded, got %+v", m.sessions)
	}

	m.Update(sessionsMsg{seq: 2, sessions: fresh})
	if len(m.sessions) != 1 || m.sessions[0].ID != "new" {
		t.Fatalf("current response must apply, got %+v", m.sessions)
	}
	if len(m.groups) == 0 {
		t.Fatal("applying sessions must rebuild timeline groups")
	}
}

func TestSearchMsgStaleSeqDiscarded(t *testing.T) {
	m := newTestModel(t)
	m.searchSeq = 5

	m.Update(searchMsg{seq: 4, query: "old", results: []types.SearchResult{{SessionID: "a"}}})
	if len(m.searchResults) != 0 {
		t.Fatalf("stale search must be discarded, got %+v", m.searchResults)
	}

	m.Update(searchMsg{seq: 5, query: "new", results: []types.SearchResult{{SessionID: "b"}}})
	if len(m.searchResults) != 1 || m.searchQuery != "new" {
		t.Fatalf("current search must apply, got query=%q results=%+v", m.searchQuery, m.searchResults)
	}
}

func TestSessionDetailForOtherSessionDiscarded(t *testing.T) {
	m := newTestModel(t)
	m.mode = viewSession
	m.sessionID = "current"

	other := &types.SessionDetail{ID: "other", Messages: []types.Message{{ID: "m1", Role: types.RoleUser}}}
	m.Update(sessionDetailMsg{id: "other", detail: other})
	if m.detail != nil {
		t.Fatal("detail for a session no longer selected must be discarded")
	}

	current := &types.SessionDetail{ID: "current", Messages: []types.Message{{ID: "m1", Role: types.RoleUser}}}
	m.Update(sessionDetailMsg{id: "current", detail: current})
	if m.detail == nil || len(m.views) != 1 {
		t.Fatalf("current detail must apply, detail=%v views=%d", m.detail, len(m.views))
	}
}

func TestSessionErrorSetsStatus(t *testing.T) {
	m := newTestModel(t)
	m.sessionID = "s1"
	m.Update(sessionDetailMsg{id: "s1", err: errors.New("boom")})
	if m.status == "" {
		t.Fatal("error responses must surface in the status line")
	}
}

func TestPreferenceSaveFailureSetsStatus(t *testing.T) {
	m := newTestModel(t)
	m.Update(prefsSavedMsg{err: errors.New("disk full")})
	if !strings.Contains(m.status, "disk full") {
		t.Fatalf("save failure must surface in the status line, got %q", m.status)
	}
	m.status = ""
	m.Update(prefsSavedMsg{})
	if m.status != "" {
		t.Fatalf("successful save must not touch the status line, got %q", m.status)
	}
}

func TestNextSourceCycles(t *testing.T) {
	if got := nextSource(config.SourceClaude); got != config.SourceCodex {
		t.Fatalf("claude should cycle to codex, got %q", got)
	}
	if got := nextSource(config.SourceGemini); got != config.SourceClaude {
		t.Fatalf("gemini should wrap to claude, got %q", got)
	}
	if got := nextSource("bogus"); got != config.SourceClaude {
		t.Fatalf("unknown source should reset to claude, got %q", got)
	}
}

func TestUsageMsgIgnoresOtherSource(t *testing.T) {
	m := newTestModel(t)
	m.usageSeq = 1
	summary := &types.UsageSummary{Today: types.TokenUsage{TotalTokens: 5}}

	m.Update(usageSummaryMsg{seq: 1, source: "codex", summary: summary})
	if m.usageSummary != nil {
		t.Fatal("summary for another source must be discarded")
	}

	m.Update(usageSummaryMsg{seq: 1, source: m.prefs.Source, summary: summary})
	if m.usageSummary == nil || m.usageSummary.Today.TotalTokens != 5 {
		t.Fatalf("summary for active source must apply, got %+v", m.usageSummary)
	}
}

func TestUsageDaysSwitchIssuesNewSeq(t *testing.T) {
	m := newTestModel(t)
	before := m.usageSeq
	if cmd := m.setUsageDays(90); cmd == nil {
		t.Fatal("changing the window must fetch detail")
	}
	if m.usageDays != 90 || m.usageSeq != before+1 {
		t.Fatalf("window state not updated: days=%d seq=%d", m.usageDays, m.usageSeq)
	}
	if cmd := m.setUsageDays(90); cmd != nil {
		t.Fatal("reselecting the active window must not refetch")
	}
}
