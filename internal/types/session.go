package types

import "time"

// SessionSummary is the lightweight listing entry returned by the store.
// ToolNames preserves first-seen order and is never mutated after fetch.
type SessionSummary struct {
	ID           string    `json:"id"`
	ProjectPath  string    `json:"project_path"`
	ProjectName  string    `json:"project_name"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
	ToolNames    []string  `json:"tool_calls"`
	Source       string    `json:"source,omitempty"`
}

// SessionDetail is the full transcript for one session.
type SessionDetail struct {
	ID          string       `json:"id"`
	ProjectPath string       `json:"project_path"`
	ProjectName string       `json:"project_name"`
	Title       string       `json:"title"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Messages    []Message    `json:"messages"`
	FileChanges []FileChange `json:"file_changes"`
	Source      string       `json:"source,omitempty"`
}

// FileChange records one write the assistant made to a file during a
// session. Version starts at 1 and increases per file.
type FileChange struct {
	FilePath   string    `json:"file_path"`
	BackupFile *string   `json:"backup_file,omitempty"`
	Version    int       `json:"version"`
	Timestamp  time.Time `json:"timestamp"`
}

type Project struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	SessionCount int    `json:"session_count"`
}

type SearchResult struct {
	SessionID      string    `json:"session_id"`
	ProjectName    string    `json:"project_name"`
	Title          string    `json:"title"`
	Timestamp      time.Time `json:"timestamp"`
	MatchedContent string    `json:"matched_content"`
	MessageType    string    `json:"message_type"`
	Source         string    `json:"source,omitempty"`
}
