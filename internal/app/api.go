package app

import (
	"context"

	"retrace/internal/types"
)

// StoreAPI is the slice of the store client the UI consumes. Commands
// depend on it so tests can substitute fakes.
type StoreAPI interface {
	ListSessions(ctx context.Context, project, source string) ([]types.SessionSummary, error)
	GetSession(ctx context.Context, id, source string) (*types.SessionDetail, error)
	SessionContext(ctx context.Context, id, source string) (string, error)
	Search(ctx context.Context, query, source string) ([]types.SearchResult, error)
	ListProjects(ctx context.Context, source string) ([]types.Project, error)
	UsageSummary(ctx context.Context, source string) (*types.UsageSummary, error)
	UsageDetail(ctx context.Context, days int, source string) (*types.UsageDetail, error)
}
