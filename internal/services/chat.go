package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/coverbot/coverbot-backend/internal/agent"
	"github.com/coverbot/coverbot-backend/internal/store"
)

// ChatService owns the session exchange: load the transcript, run the
// agent, persist the new turns.
type ChatService struct {
	store  store.ConversationStore
	agent  *agent.Orchestrator
	logger *logrus.Logger
}

// NewChatService creates a new chat service
func NewChatService(conversations store.ConversationStore, orchestrator *agent.Orchestrator, logger *logrus.Logger) *ChatService {
	return &ChatService{
		store:  conversations,
		agent:  orchestrator,
		logger: logger,
	}
}

// ProcessMessage runs one exchange for a session and always returns a
// usable reply. When the exchange fails the reply is a recovered
// apology embedding the failure reason, and the error is returned
// alongside it for response metadata; callers must not treat it as a
// request failure.
func (s *ChatService) ProcessMessage(ctx context.Context, sessionID, message string) (string, error) {
	reply, err := s.exchange(ctx, sessionID, message)
	if err == nil {
		return reply, nil
	}

	s.logger.WithError(err).WithField("session_id", sessionID).Error("chat exchange failed")
	errReply := fmt.Sprintf("I encountered an error while processing your request: %v", err)

	// best effort: record the apology so the transcript reflects what
	// the user saw, but never escalate a secondary store failure
	if appendErr := s.store.Append(ctx, sessionID, store.Turn{
		Role:      store.RoleAssistant,
		Content:   errReply,
		Timestamp: time.Now().UTC(),
	}); appendErr != nil {
		s.logger.WithError(appendErr).WithField("session_id", sessionID).
			Warn("failed to record error reply in transcript")
	}

	return errReply, err
}

func (s *ChatService) exchange(ctx context.Context, sessionID, message string) (string, error) {
	history, err := s.store.History(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load transcript: %w", err)
	}

	reply, err := s.agent.Run(ctx, history, message)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	err = s.store.Append(ctx, sessionID,
		store.Turn{Role: store.RoleUser, Content: message, Timestamp: now},
		store.Turn{Role: store.RoleAssistant, Content: reply, Timestamp: now},
	)
	if err != nil {
		return "", fmt.Errorf("persist exchange: %w", err)
	}

	return reply, nil
}
