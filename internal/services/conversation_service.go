package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/careertrackhq/careertrack-backend/internal/dto"
	"github.com/careertrackhq/careertrack-backend/internal/identity"
	"github.com/careertrackhq/careertrack-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	conversationTitleLimit   = 50
	defaultConversationTitle = "New conversation"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageRequired      = errors.New("message required")
	ErrAssistantUnavailable = errors.New("assistant is currently unavailable")
)

// ConversationService imposes thread structure over the flat log of
// query/response interactions.
type ConversationService struct {
	db *gorm.DB
	ai AIClient
}

func NewConversationService(db *gorm.DB, ai AIClient) *ConversationService {
	return &ConversationService{db: db, ai: ai}
}

// Chat sends the user message to the assistant, persists the exchange under
// the given conversation (minting a fresh id when absent), and returns the
// reply together with the conversation id so the caller can continue the
// thread.
func (s *ConversationService) Chat(ctx context.Context, userID uuid.UUID, message string, conversationID *uuid.UUID) (*dto.ChatResponse, error) {
	if message == "" {
		return nil, ErrMessageRequired
	}

	convID := uuid.New()
	if conversationID != nil {
		// A conversation never spans users: a foreign id silently starts a
		// fresh thread instead of joining someone else's.
		var foreign int64
		s.db.Model(&models.AIInteraction{}).
			Where("conversation_id = ? AND user_id <> ?", *conversationID, userID).
			Count(&foreign)
		if foreign == 0 {
			convID = *conversationID
		}
	}

	reply, err := s.ai.Reply(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}

	interaction := models.AIInteraction{
		ID:             uuid.New(),
		UserID:         userID,
		ConversationID: convID,
		UserQuery:      message,
		AIResponse:     reply,
		InputMode:      "text",
		ResponseMode:   "text",
	}

	if err := s.db.Create(&interaction).Error; err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		MessageID:      interaction.ID,
		Reply:          reply,
		ConversationID: convID,
		Timestamp:      interaction.CreatedAt,
	}, nil
}

// ListConversations groups the caller's interactions into threads ordered by
// last activity, newest first.
func (s *ConversationService) ListConversations(userID uuid.UUID, page, limit int) (*dto.ConversationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var interactions []models.AIInteraction
	err := s.db.Scopes(identity.OwnedBy(userID)).
		Order("created_at ASC, id ASC").
		Find(&interactions).Error
	if err != nil {
		return nil, err
	}

	byConv := make(map[uuid.UUID]*dto.ConversationSummary)
	order := make([]uuid.UUID, 0)
	for i := range interactions {
		it := &interactions[i]
		summary, ok := byConv[it.ConversationID]
		if !ok {
			summary = &dto.ConversationSummary{
				ID:    it.ConversationID,
				Title: conversationTitle(it.UserQuery),
			}
			byConv[it.ConversationID] = summary
			order = append(order, it.ConversationID)
		}
		summary.LastMessage = it.AIResponse
		summary.LastMessageTime = it.CreatedAt
		summary.MessageCount++
	}

	conversations := make([]dto.ConversationSummary, 0, len(order))
	for _, id := range order {
		conversations = append(conversations, *byConv[id])
	}
	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastMessageTime.After(conversations[j].LastMessageTime)
	})

	total := int64(len(conversations))
	start := (page - 1) * limit
	if start > len(conversations) {
		start = len(conversations)
	}
	end := start + limit
	if end > len(conversations) {
		end = len(conversations)
	}

	return &dto.ConversationListResponse{
		Conversations: conversations[start:end],
		Pagination:    dto.NewPagination(page, limit, total),
	}, nil
}

// ListMessages expands each stored interaction into a "user" and an "ai"
// message in chronological order. Pagination counts interaction rows, so a
// page of size N yields up to 2N messages.
func (s *ConversationService) ListMessages(userID, conversationID uuid.UUID, page, limit int) (*dto.MessageListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&models.AIInteraction{}).
		Scopes(identity.OwnedBy(userID)).
		Where("conversation_id = ?", conversationID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, ErrConversationNotFound
	}

	var interactions []models.AIInteraction
	err := query.Order("created_at ASC, id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&interactions).Error
	if err != nil {
		return nil, err
	}

	messages := make([]dto.ChatMessage, 0, 2*len(interactions))
	for i := range interactions {
		it := &interactions[i]
		messages = append(messages, dto.ChatMessage{
			ID:        it.ID.String(),
			Type:      "user",
			Content:   it.UserQuery,
			Timestamp: it.CreatedAt,
		})
		messages = append(messages, dto.ChatMessage{
			ID:        it.ID.String() + "_ai",
			Type:      "ai",
			Content:   it.AIResponse,
			Timestamp: it.CreatedAt,
		})
	}

	return &dto.MessageListResponse{
		Messages:   messages,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// DeleteConversation removes every interaction of the caller's thread. Zero
// matched rows report not-found, so a retry of a completed delete does not
// read as success.
func (s *ConversationService) DeleteConversation(userID, conversationID uuid.UUID) (int64, error) {
	result := s.db.Scopes(identity.OwnedBy(userID)).
		Where("conversation_id = ?", conversationID).
		Delete(&models.AIInteraction{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrConversationNotFound
	}
	return result.RowsAffected, nil
}

// conversationTitle derives a thread title from its first query, truncated
// at 50 runes.
func conversationTitle(firstQuery string) string {
	if firstQuery == "" {
		return defaultConversationTitle
	}
	runes := []rune(firstQuery)
	if len(runes) <= conversationTitleLimit {
		return firstQuery
	}
	return string(runes[:conversationTitleLimit]) + "..."
}
