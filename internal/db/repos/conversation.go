package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stackplan/stackplan/internal/db/models"
)

// ConversationRepository handles database operations for conversations and messages
type ConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new instance of ConversationRepository
func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{
		db: db,
	}
}

// Create creates a new conversation in the database
func (r *ConversationRepository) Create(ctx context.Context, conversation *models.Conversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

// Get retrieves a conversation by ID from the database
func (r *ConversationRepository) Get(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// List retrieves all conversations ordered by recency
func (r *ConversationRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Conversation, error) {
	var conversations []models.Conversation
	query := r.db.WithContext(ctx).Order("updated_at desc")
	if opts != nil {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Find(&conversations).Error
	return conversations, err
}

// Touch bumps a conversation's updated_at timestamp
func (r *ConversationRepository) Touch(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Conversation{}).
		Where("id = ?", id).Update("updated_at", time.Now()).Error
}

// Delete deletes a conversation and its messages from the database
func (r *ConversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Conversation{}, "id = ?", id).Error
	})
}

// AppendMessage adds a message to a conversation
func (r *ConversationRepository) AppendMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListMessages retrieves all messages of a conversation in chronological order
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID).
		Order("created_at asc").Find(&messages).Error
	return messages, err
}
