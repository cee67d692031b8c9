package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"retrace/internal/usage"
)

func fetchSessionsCmd(api StoreAPI, seq int, project, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		sessions, err := api.ListSessions(ctx, project, source)
		return sessionsMsg{seq: seq, sessions: sessions, err: err}
	}
}

func fetchProjectsCmd(api StoreAPI, seq int, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		projects, err := api.ListProjects(ctx, source)
		return projectsMsg{seq: seq, projects: projects, err: err}
	}
}

func fetchSessionDetailCmd(api StoreAPI, id, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		detail, err := api.GetSession(ctx, id, source)
		return sessionDetailMsg{id: id, detail: detail, err: err}
	}
}

func searchCmd(api StoreAPI, seq int, query, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		results, err := api.Search(ctx, query, source)
		return searchMsg{seq: seq, query: query, results: results, err: err}
	}
}

func fetchUsageSummaryCmd(api StoreAPI, cache *usage.SummaryCache, seq int, source string) tea.Cmd {
	return func() tea.Msg {
		if cache != nil {
			if summary, ok := cache.Get(source); ok {
				return usageSummaryMsg{seq: seq, source: source, summary: &summary}
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		summary, err := api.UsageSummary(ctx, source)
		if err == nil && cache != nil && summary != nil {
			cache.Put(source, *summary)
		}
		return usageSummaryMsg{seq: seq, source: source, summary: summary, err: err}
	}
}

func fetchUsageDetailCmd(api StoreAPI, seq, days int, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		detail, err := api.UsageDetail(ctx, days, source)
		return usageDetailMsg{seq: seq, days: days, detail: detail, err: err}
	}
}

func fetchSessionContextCmd(api StoreAPI, id, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		text, err := api.SessionContext(ctx, id, source)
		return sessionContextMsg{id: id, context: text, err: err}
	}
}

func copyExpiryCmd(id string, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return copyExpiredMsg{id: id}
	})
}

// savePreferencesCmd persists preferences off the update loop; failures
// are non-fatal and surface in the status line.
func savePreferencesCmd(save func() error) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: save()}
	}
}
