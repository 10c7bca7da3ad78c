package messageRepo

import "diarista/models"

// MessageRepository defines methods for engagement message threads.
type MessageRepository interface {
	// Create inserts a new message.
	Create(message *models.Message) error
	// ListByEngagement lists a thread oldest first.
	ListByEngagement(engagementID string) ([]models.Message, error)
	// MarkRead marks every message in the thread not sent by the reader
	// as read.
	MarkRead(engagementID, readerID string) error
}
