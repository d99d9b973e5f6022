package service_test

import (
	"context"
	"testing"

	"whome/internal/model"
	"whome/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChannel_AdminOnlyAndUniqueName(t *testing.T) {
	db := newTestDB(t)
	userSvc := service.NewUserService(db, nil)
	channelSvc := service.NewChannelService(db)

	alice := registerUser(t, userSvc, "@alice", "alice@example.com")
	admin := registerUser(t, userSvc, "@admin", "admin@example.com")
	makeAdmin(t, db, admin.ID)

	_, err := channelSvc.CreateChannel(alice.ID, "news", "")
	assert.ErrorIs(t, err, model.ErrPermissionDenied)

	_, err = channelSvc.CreateChannel(admin.ID, "  ", "")
	assert.ErrorIs(t, err, model.ErrEmptyContent)

	ch, err := channelSvc.CreateChannel(admin.ID, "news", "daily updates")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, ch.OwnerID)

	_, err = channelSvc.CreateChannel(admin.ID, "news", "dup")
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestPostChannelMessage(t *testing.T) {
	db := newTestDB(t)
	userSvc := service.NewUserService(db, nil)
	channelSvc := service.NewChannelService(db)

	alice := registerUser(t, userSvc, "@alice", "alice@example.com")
	admin := registerUser(t, userSvc, "@admin", "admin@example.com")
	makeAdmin(t, db, admin.ID)

	ch, err := channelSvc.CreateChannel(admin.ID, "news", "")
	require.NoError(t, err)

	// 正文和图片都空拒绝
	_, err = channelSvc.PostMessage(ch.ID, alice.ID, "  ", "")
	assert.ErrorIs(t, err, model.ErrEmptyContent)

	_, err = channelSvc.PostMessage(9999, alice.ID, "hi", "")
	assert.ErrorIs(t, err, model.ErrNotFound)

	// 普通用户也能发
	_, err = channelSvc.PostMessage(ch.ID, alice.ID, "hello channel", "")
	require.NoError(t, err)

	// 只带图片也算有内容
	_, err = channelSvc.PostMessage(ch.ID, admin.ID, "", "static/channels/pic.png")
	require.NoError(t, err)

	rows, err := channelSvc.ListMessages(context.Background(), ch.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "hello channel", rows[0].Content)
	assert.Equal(t, "@alice", rows[0].SenderUsername)
	assert.Equal(t, "static/channels/pic.png", rows[1].Image)
}

func TestListChannels_Paging(t *testing.T) {
	db := newTestDB(t)
	userSvc := service.NewUserService(db, nil)
	channelSvc := service.NewChannelService(db)

	admin := registerUser(t, userSvc, "@admin", "admin@example.com")
	makeAdmin(t, db, admin.ID)

	names := []string{"alpha", "beta", "gamma"}
	for _, name := range names {
		_, err := channelSvc.CreateChannel(admin.ID, name, "")
		require.NoError(t, err)
	}

	list, err := channelSvc.ListChannels(1, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// 新频道在前
	assert.Equal(t, "gamma", list[0].Name)
	assert.Equal(t, "beta", list[1].Name)

	list, err = channelSvc.ListChannels(2, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "alpha", list[0].Name)

	// 非法分页参数回退默认值
	list, err = channelSvc.ListChannels(0, -1)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
