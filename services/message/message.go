package message

import (
	"fmt"
	"strings"

	engagementRepo "diarista/database/repository/engagement"
	messageRepo "diarista/database/repository/message"
	"diarista/models"
	"diarista/utils"

	"github.com/google/uuid"
)

// MessageService covers the per-engagement chat thread.
type MessageService interface {
	// Send posts a message into an engagement's thread.
	Send(engagementID, senderID, body string) (*models.Message, error)
	// List returns the thread and marks messages addressed to the actor
	// as read.
	List(engagementID, actorID string) ([]models.Message, error)
}

// DefaultMessageService is the production implementation.
type DefaultMessageService struct {
	Messages    messageRepo.MessageRepository
	Engagements engagementRepo.EngagementRepository
}

// Send posts a message; only the engagement's parties may write.
func (s *DefaultMessageService) Send(engagementID, senderID, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("message body is required: %w", utils.ErrInvalid)
	}

	eng, err := s.Engagements.GetByID(engagementID)
	if err != nil {
		return nil, err
	}
	if !eng.IsParty(senderID) {
		return nil, fmt.Errorf("only engagement parties may send messages: %w", utils.ErrForbidden)
	}

	msg := &models.Message{
		ID:           uuid.New().String(),
		EngagementID: engagementID,
		SenderID:     senderID,
		Body:         body,
	}
	if err := s.Messages.Create(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// List returns the thread oldest first, marking the counterpart's
// messages read.
func (s *DefaultMessageService) List(engagementID, actorID string) ([]models.Message, error) {
	eng, err := s.Engagements.GetByID(engagementID)
	if err != nil {
		return nil, err
	}
	if !eng.IsParty(actorID) {
		return nil, fmt.Errorf("only engagement parties may read messages: %w", utils.ErrForbidden)
	}

	if err := s.Messages.MarkRead(engagementID, actorID); err != nil {
		return nil, err
	}
	return s.Messages.ListByEngagement(engagementID)
}
