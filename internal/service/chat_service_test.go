package service_test

import (
	"context"
	"testing"

	"whome/internal/model"
	"whome/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatIDFor_SymmetricAndIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userSvc := service.NewUserService(db, nil)
	chatSvc := service.NewChatService(db)

	alice := registerUser(t, userSvc, "@alice", "alice@example.com")
	bob := registerUser(t, userSvc, "@bob", "bob@example.com")

	id1, err := chatSvc.ChatIDFor(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	id2, err := chatSvc.ChatIDFor(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	id3, err := chatSvc.ChatIDFor(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, id1, id3)

	// 自聊拒绝
	_, err = chatSvc.ChatIDFor(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, model.ErrSelfChat)
}

func TestStartChat_ByUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userSvc := service.NewUserService(db, nil)
	chatSvc := service.NewChatService(db)

	alice := registerUser(t, userSvc, "@alice", "alice@example.com")
	bob := registerUser(t, userSvc, "@bob", "bob@example.com")

	chatID, peer, err := chatSvc.StartChat(ctx, alice.ID, "@bob")
	require.NoError(t, err)
	assert.NotZero(t, chatID)
	assert.Equal(t, bob.ID, peer.ID)

	_, _, err = chatSvc.StartChat(ctx, alice.ID, "@nobody")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSendMessage_Validation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userSvc := service.NewUserService(db, nil)
	chatSvc := service.NewChatService(db)

	alice := registerUser(t, userSvc, "@alice", "alice@example.com")
	bob := registerUser(t, userSvc, "@bob", "bob@example.com")
	eve := registerUser(t, userSvc, "@eve", "eve@example.com")

	chatID, err := chatSvc.ChatIDFor(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// 局外人不能发
	_, err = chatSvc.SendMessage(ctx, chatID, eve.ID, model.MessageKindText, "hi")
	assert.ErrorIs(t, err, model.ErrPermissionDenied)

	// 空文本拒绝
	_, err = chatSvc.SendMessage(ctx, chatID, alice.ID, model.MessageKindText, "  ")
	assert.ErrorIs(t, err, model.ErrEmptyContent)

	// 不认识的 kind
	_, err = chatSvc.SendMessage(ctx, chatID, alice.ID, "voice", "hi")
	assert.ErrorIs(t, err, model.ErrInvalidKind)

	// 目录外的礼物
	_, err = chatSvc.SendMessage(ctx, chatID, alice.ID, model.MessageKindGift, "Pony")
	assert.ErrorIs(t, err, model.ErrInvalidGift)

	// 会话不存在
	_, err = chatSvc.SendMessage(ctx, 9999, alice.ID, model.MessageKindText, "hi")
	assert.ErrorIs(t, err, model.ErrNotFound)

	msg, err := chatSvc.SendMessage(ctx, chatID, alice.ID, model.MessageKindText, "hello bob")
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.NotZero(t, msg.CreatedAt)
}

func TestSendMessage_GiftCatalog(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userSvc := service.NewUserService(db, nil)
	chatSvc := service.NewChatService(db)

	alice := registerUser(t, userSvc, "@alice", "alice@example.com")
	bob := registerUser(t, userSvc, "@bob", "bob@example.com")
	chatID, err := chatSvc.ChatIDFor(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	for _, gift := range model.Gifts {
		msg, err := chatSvc.SendMessage(ctx, chatID, alice.ID, model.MessageKindGift, gift)
		require.NoError(t, err, "gift %q", gift)
		assert.Equal(t, model.MessageKindGift, msg.Kind)
	}
}

func TestListMessages_OrderedByInsertion(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userSvc := service.NewUserService(db, nil)
	chatSvc := service.NewChatService(db)

	alice := registerUser(t, userSvc, "@alice", "alice@example.com")
	bob := registerUser(t, userSvc, "@bob", "bob@example.com")
	chatID, err := chatSvc.ChatIDFor(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = chatSvc.SendMessage(ctx, chatID, alice.ID, model.MessageKindText, "one")
	require.NoError(t, err)
	_, err = chatSvc.SendMessage(ctx, chatID, bob.ID, model.MessageKindText, "two")
	require.NoError(t, err)
	_, err = chatSvc.SendMessage(ctx, chatID, alice.ID, model.MessageKindGift, "Rocket")
	require.NoError(t, err)

	rows, err := chatSvc.ListMessages(ctx, chatID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "one", rows[0].Body)
	assert.Equal(t, "@alice", rows[0].SenderUsername)
	assert.Equal(t, "two", rows[1].Body)
	assert.Equal(t, "@bob", rows[1].SenderUsername)
	assert.Equal(t, model.MessageKindGift, rows[2].Kind)
	assert.Equal(t, "Rocket", rows[2].Body)

	_, err = chatSvc.ListMessages(ctx, 9999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListDialogs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userSvc := service.NewUserService(db, nil)
	chatSvc := service.NewChatService(db)

	alice := registerUser(t, userSvc, "@alice", "alice@example.com")
	bob := registerUser(t, userSvc, "@bob", "bob@example.com")
	carol := registerUser(t, userSvc, "@carol", "carol@example.com")
	require.NoError(t, userSvc.UpdateProfile(bob.ID, "Bob", "Stone", ""))

	chatAB, err := chatSvc.ChatIDFor(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	chatAC, err := chatSvc.ChatIDFor(ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	dialogs, err := chatSvc.ListDialogs(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, dialogs, 2)

	// 新会话在前
	assert.Equal(t, chatAC, dialogs[0].ChatID)
	assert.Equal(t, "@carol", dialogs[0].PeerUsername)
	assert.Equal(t, chatAB, dialogs[1].ChatID)
	assert.Equal(t, "@bob", dialogs[1].PeerUsername)
	assert.Equal(t, "Bob Stone", dialogs[1].PeerName)

	// 局外人看不到别人的会话
	dialogs, err = chatSvc.ListDialogs(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, dialogs, 1)
	assert.Equal(t, "@alice", dialogs[0].PeerUsername)
}
