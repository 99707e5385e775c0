package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	Message        string     `json:"message"`
	ConversationID *uuid.UUID `json:"conversationId"`
}

type ChatResponse struct {
	MessageID      uuid.UUID `json:"messageId"`
	Reply          string    `json:"reply"`
	ConversationID uuid.UUID `json:"conversationId"`
	Timestamp      time.Time `json:"timestamp"`
}

type ConversationSummary struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	MessageCount    int64     `json:"messageCount"`
}

type ConversationListResponse struct {
	Conversations []ConversationSummary `json:"conversations"`
	Pagination    Pagination            `json:"pagination"`
}

// ChatMessage is one logical message in a thread. Each stored interaction
// expands into a "user" message and an "ai" message.
type ChatMessage struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type MessageListResponse struct {
	Messages   []ChatMessage `json:"messages"`
	Pagination Pagination    `json:"pagination"`
}

type DeleteConversationResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}
