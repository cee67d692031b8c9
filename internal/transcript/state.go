package transcript

import "time"

// CopiedTTL is how long the copy confirmation shows before the button
// reverts to its idle label.
const CopiedTTL = 2 * time.Second

// State tracks per-transcript interaction: which tool-call panels are
// expanded and which copy actions recently fired. The clock is injected
// so tests control time.
type State struct {
	now      func() time.Time
	expanded map[string]bool
	copied   map[string]time.Time
}

func NewState(now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	return &State{
		now:      now,
		expanded: map[string]bool{},
		copied:   map[string]time.Time{},
	}
}

// Toggle flips the expansion of a tool-call panel and reports the new
// state.
func (s *State) Toggle(toolCallID string) bool {
	s.expanded[toolCallID] = !s.expanded[toolCallID]
	return s.expanded[toolCallID]
}

func (s *State) Expanded(toolCallID string) bool {
	return s.expanded[toolCallID]
}

// MarkCopied records a copy action for a message; Copied reports true
// for the confirmation window after it.
func (s *State) MarkCopied(messageID string) {
	s.copied[messageID] = s.now()
}

func (s *State) Copied(messageID string) bool {
	at, ok := s.copied[messageID]
	if !ok {
		return false
	}
	if s.now().Sub(at) >= CopiedTTL {
		delete(s.copied, messageID)
		return false
	}
	return true
}

// Reset clears all interaction state, for navigating to a new session.
func (s *State) Reset() {
	s.expanded = map[string]bool{}
	s.copied = map[string]time.Time{}
}
