package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nlpodyssey/openai-agents-go/memory"
)

// Roles used in conversation transcripts.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one transcript entry, kept for display purposes only; the
// model-side history lives in the conversation's memory.Session.
type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Conversation owns the transcript and the model session for one chat
// thread. All mutation goes through explicit Append calls.
type Conversation struct {
	ID string

	mu       sync.Mutex
	messages []Message
	session  memory.Session
}

// Append records one transcript entry.
func (c *Conversation) Append(role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, Message{Role: role, Content: content, At: time.Now().UTC()})
}

// Messages returns a copy of the transcript in order.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of transcript entries.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// Session returns the model-side history for this conversation.
func (c *Conversation) Session() memory.Session { return c.session }

// sessionFactory builds the model-side history store for a new conversation.
// Swappable in tests.
type sessionFactory func(ctx context.Context, id string) (memory.Session, error)

// Store is the in-memory list of live conversations. Nothing is persisted:
// conversations live for the process lifetime only.
type Store struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
	newSession    sessionFactory
}

// NewStore builds an empty store backed by in-memory SQLite sessions.
func NewStore() *Store {
	return &Store{
		conversations: make(map[string]*Conversation),
		newSession: func(ctx context.Context, id string) (memory.Session, error) {
			return memory.NewSQLiteSession(ctx, memory.SQLiteSessionParams{SessionID: id})
		},
	}
}

// Create starts a new conversation with a fresh ID and model session.
func (s *Store) Create(ctx context.Context) (*Conversation, error) {
	id := uuid.NewString()
	sess, err := s.newSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("create session %s: %w", id, err)
	}
	conv := &Conversation{ID: id, session: sess}

	s.mu.Lock()
	s.conversations[id] = conv
	s.mu.Unlock()
	return conv, nil
}

// Get returns the conversation with the given ID, if it exists.
func (s *Store) Get(id string) (*Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	return conv, ok
}

// Len returns the number of live conversations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}
