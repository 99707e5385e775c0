package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/careertrackhq/careertrack-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubAIClient struct {
	reply string
	err   error
}

func (s *stubAIClient) Reply(_ context.Context, _ string) (string, error) {
	return s.reply, s.err
}

func seedInteraction(t *testing.T, db *gorm.DB, userID, convID uuid.UUID, query, response string, at time.Time) *models.AIInteraction {
	t.Helper()
	it := models.AIInteraction{
		ID:             uuid.New(),
		UserID:         userID,
		ConversationID: convID,
		UserQuery:      query,
		AIResponse:     response,
		InputMode:      "text",
		ResponseMode:   "text",
		CreatedAt:      at,
	}
	require.NoError(t, db.Create(&it).Error)
	return &it
}

func TestChatMintsAndContinuesConversation(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "chat@example.com")
	svc := NewConversationService(db, &stubAIClient{reply: "Tailor your resume to the role."})

	ctx := context.Background()

	first, err := svc.Chat(ctx, user.ID, "How do I improve my resume?", nil)
	require.NoError(t, err)
	assert.Equal(t, "Tailor your resume to the role.", first.Reply)
	assert.NotEqual(t, uuid.Nil, first.ConversationID)

	second, err := svc.Chat(ctx, user.ID, "What about the cover letter?", &first.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)

	var count int64
	db.Model(&models.AIInteraction{}).
		Where("conversation_id = ?", first.ConversationID).
		Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestChatForeignConversationStartsFreshThread(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice-chat@example.com")
	bob := createTestUser(t, db, "bob-chat@example.com")
	svc := NewConversationService(db, &stubAIClient{reply: "ok"})

	ctx := context.Background()

	aliceResp, err := svc.Chat(ctx, alice.ID, "hello", nil)
	require.NoError(t, err)

	// Bob passing Alice's conversation id must not join her thread.
	bobResp, err := svc.Chat(ctx, bob.ID, "hi", &aliceResp.ConversationID)
	require.NoError(t, err)
	assert.NotEqual(t, aliceResp.ConversationID, bobResp.ConversationID)
}

func TestChatAssistantFailure(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "chat-fail@example.com")
	svc := NewConversationService(db, &stubAIClient{err: errors.New("upstream timeout")})

	_, err := svc.Chat(context.Background(), user.ID, "hello", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssistantUnavailable)

	// Nothing is persisted when the assistant fails.
	var count int64
	db.Model(&models.AIInteraction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestChatEmptyMessage(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "chat-empty@example.com")
	svc := NewConversationService(db, &stubAIClient{reply: "ok"})

	_, err := svc.Chat(context.Background(), user.ID, "", nil)
	assert.ErrorIs(t, err, ErrMessageRequired)
}

func TestListConversationsGroupsAndOrders(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "convs@example.com")
	svc := NewConversationService(db, &stubAIClient{reply: "ok"})

	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	convA := uuid.New()
	convB := uuid.New()

	seedInteraction(t, db, user.ID, convA, "first question", "answer one", base)
	seedInteraction(t, db, user.ID, convA, "follow up", "answer two", base.Add(time.Hour))
	seedInteraction(t, db, user.ID, convB, "different topic", "answer three", base.Add(2*time.Hour))

	resp, err := svc.ListConversations(user.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Conversations, 2)

	// Newest activity first.
	assert.Equal(t, convB, resp.Conversations[0].ID)
	assert.Equal(t, "different topic", resp.Conversations[0].Title)
	assert.Equal(t, int64(1), resp.Conversations[0].MessageCount)

	assert.Equal(t, convA, resp.Conversations[1].ID)
	assert.Equal(t, "first question", resp.Conversations[1].Title)
	assert.Equal(t, int64(2), resp.Conversations[1].MessageCount)
	assert.Equal(t, "answer two", resp.Conversations[1].LastMessage)
}

func TestConversationTitleTruncation(t *testing.T) {
	long := strings.Repeat("a", 60)
	title := conversationTitle(long)
	assert.Equal(t, strings.Repeat("a", 50)+"...", title)

	short := strings.Repeat("b", 40)
	assert.Equal(t, short, conversationTitle(short))

	exact := strings.Repeat("c", 50)
	assert.Equal(t, exact, conversationTitle(exact))

	assert.Equal(t, defaultConversationTitle, conversationTitle(""))
}

func TestListMessagesExpandsPairs(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "msgs@example.com")
	svc := NewConversationService(db, &stubAIClient{reply: "ok"})

	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	convID := uuid.New()
	first := seedInteraction(t, db, user.ID, convID, "q1", "a1", base)
	seedInteraction(t, db, user.ID, convID, "q2", "a2", base.Add(time.Minute))

	resp, err := svc.ListMessages(user.ID, convID, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Messages, 4)

	assert.Equal(t, first.ID.String(), resp.Messages[0].ID)
	assert.Equal(t, "user", resp.Messages[0].Type)
	assert.Equal(t, "q1", resp.Messages[0].Content)

	assert.Equal(t, first.ID.String()+"_ai", resp.Messages[1].ID)
	assert.Equal(t, "ai", resp.Messages[1].Type)
	assert.Equal(t, "a1", resp.Messages[1].Content)

	// Pagination counts interaction rows, not expanded messages.
	assert.Equal(t, int64(2), resp.Pagination.Total)
}

func TestListMessagesUnknownConversation(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "msgs-none@example.com")
	svc := NewConversationService(db, &stubAIClient{reply: "ok"})

	_, err := svc.ListMessages(user.ID, uuid.New(), 1, 10)
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestListMessagesForeignConversation(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice-msgs@example.com")
	bob := createTestUser(t, db, "bob-msgs@example.com")
	svc := NewConversationService(db, &stubAIClient{reply: "ok"})

	convID := uuid.New()
	seedInteraction(t, db, alice.ID, convID, "q", "a", time.Now().UTC())

	_, err := svc.ListMessages(bob.ID, convID, 1, 10)
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestDeleteConversation(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "del-conv@example.com")
	svc := NewConversationService(db, &stubAIClient{reply: "ok"})

	convID := uuid.New()
	base := time.Now().UTC()
	seedInteraction(t, db, user.ID, convID, "q1", "a1", base)
	seedInteraction(t, db, user.ID, convID, "q2", "a2", base.Add(time.Second))

	deleted, err := svc.DeleteConversation(user.ID, convID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// A repeat delete finds nothing.
	_, err = svc.DeleteConversation(user.ID, convID)
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestDeleteConversationForeignOwner(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice-del@example.com")
	bob := createTestUser(t, db, "bob-del@example.com")
	svc := NewConversationService(db, &stubAIClient{reply: "ok"})

	convID := uuid.New()
	seedInteraction(t, db, alice.ID, convID, "q", "a", time.Now().UTC())

	_, err := svc.DeleteConversation(bob.ID, convID)
	assert.ErrorIs(t, err, ErrConversationNotFound)

	// Alice's thread is untouched.
	var count int64
	db.Model(&models.AIInteraction{}).Where("conversation_id = ?", convID).Count(&count)
	assert.Equal(t, int64(1), count)
}
