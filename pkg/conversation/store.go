package conversation

import "sync"

// Role identifies the sender of a turn.
type Role string

// Message role constants.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in the conversation. Turns are immutable once
// appended; the ordered sequence of turns is the conversation.
type Turn struct {
	// Role identifies the message sender (system, user, assistant)
	Role Role `json:"role"`

	// Content is the message text content
	Content string `json:"content"`
}

// Store is the process-wide conversation history.
//
// There is exactly one Store per process and it is shared by every request.
// Appends happen only under the pipeline's serialization lock, but reads may
// come from diagnostic routes at any time, so access is guarded internally.
type Store struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewStore creates a store seeded with the system turn. The system turn is
// the rendered system prompt including the embedded API specification.
func NewStore(systemPrompt string) *Store {
	return &Store{
		turns: []Turn{{Role: RoleSystem, Content: systemPrompt}},
	}
}

// Append adds a turn to the end of the conversation.
func (s *Store) Append(t Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, t)
}

// Snapshot returns a copy of the conversation at a consistent length.
// The returned slice is owned by the caller.
func (s *Store) Snapshot() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the current number of turns.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}
