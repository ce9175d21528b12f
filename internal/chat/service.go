package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/nlpodyssey/openai-agents-go/memory"
	"github.com/rs/zerolog"

	"sectorchat/internal/logger"
)

// ErrConversationNotFound is returned when a caller references an unknown
// conversation ID.
var ErrConversationNotFound = errors.New("conversation not found")

// Asker is the reasoning engine boundary: one question in, one answer out,
// with per-conversation history carried by the session.
type Asker interface {
	Ask(ctx context.Context, session memory.Session, question string) (string, error)
}

// Service runs chat turns: it resolves (or creates) the conversation,
// appends the user message, asks the agent, and appends the answer.
type Service interface {
	// Ask runs one turn. An empty conversationID starts a new conversation.
	Ask(ctx context.Context, conversationID, message string) (*Conversation, string, error)
}

type chatService struct {
	store *Store
	agent Asker
	log   zerolog.Logger
}

// NewService wires the conversation store to the reasoning engine.
func NewService(store *Store, agent Asker) Service {
	return &chatService{store: store, agent: agent, log: logger.With("chat")}
}

func (s *chatService) Ask(ctx context.Context, conversationID, message string) (*Conversation, string, error) {
	var (
		conv *Conversation
		err  error
	)
	if conversationID == "" {
		conv, err = s.store.Create(ctx)
		if err != nil {
			return nil, "", err
		}
		s.log.Info().Str("conversation_id", conv.ID).Msg("conversation started")
	} else {
		var ok bool
		conv, ok = s.store.Get(conversationID)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", ErrConversationNotFound, conversationID)
		}
	}

	conv.Append(RoleUser, message)

	answer, err := s.agent.Ask(ctx, conv.Session(), message)
	if err != nil {
		// Errors are part of the transcript too: nothing is swallowed.
		conv.Append(RoleAssistant, "error: "+err.Error())
		return conv, "", err
	}

	conv.Append(RoleAssistant, answer)
	return conv, answer, nil
}
