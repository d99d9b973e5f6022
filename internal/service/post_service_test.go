package service_test

import (
	"context"
	"testing"

	"whome/internal/model"
	"whome/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_RejectsEmptyContent(t *testing.T) {
	db := newTestDB(t)
	userSvc := service.NewUserService(db, nil)
	postSvc := service.NewPostService(db)

	alice := registerUser(t, userSvc, "@alice", "alice@example.com")

	_, err := postSvc.CreatePost(alice.ID, "", "")
	assert.ErrorIs(t, err, model.ErrEmptyContent)
	_, err = postSvc.CreatePost(alice.ID, "   \n\t ", "")
	assert.ErrorIs(t, err, model.ErrEmptyContent)

	post, err := postSvc.CreatePost(alice.ID, "hello world", "")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
}

func TestAddComment(t *testing.T) {
	db := newTestDB(t)
	userSvc := service.NewUserService(db, nil)
	postSvc := service.NewPostService(db)

	alice := registerUser(t, userSvc, "@alice", "alice@example.com")
	post, err := postSvc.CreatePost(alice.ID, "first", "")
	require.NoError(t, err)

	_, err = postSvc.AddComment(alice.ID, post.ID, "  ")
	assert.ErrorIs(t, err, model.ErrEmptyContent)

	_, err = postSvc.AddComment(alice.ID, 9999, "ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)

	c1, err := postSvc.AddComment(alice.ID, post.ID, "one")
	require.NoError(t, err)
	c2, err := postSvc.AddComment(alice.ID, post.ID, "two")
	require.NoError(t, err)
	assert.Greater(t, c2.ID, c1.ID)
}

func TestListFeed_OrderAndEnrichment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userSvc := service.NewUserService(db, nil)
	postSvc := service.NewPostService(db)
	newTestRedis(t)
	likeSvc := service.NewLikeService(db)

	alice := registerUser(t, userSvc, "@alice", "alice@example.com")
	bob := registerUser(t, userSvc, "@bob", "bob@example.com")

	p1, err := postSvc.CreatePost(alice.ID, "older", "")
	require.NoError(t, err)
	p2, err := postSvc.CreatePost(bob.ID, "newer", "")
	require.NoError(t, err)

	_, err = postSvc.AddComment(bob.ID, p1.ID, "nice")
	require.NoError(t, err)
	_, err = postSvc.AddComment(alice.ID, p1.ID, "thanks")
	require.NoError(t, err)
	_, _, err = likeSvc.Toggle(ctx, bob.ID, p1.ID)
	require.NoError(t, err)

	feed, err := postSvc.ListFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	// 新帖在前
	assert.Equal(t, p2.ID, feed[0].ID)
	assert.Equal(t, "@bob", feed[0].Username)
	assert.Equal(t, int64(0), feed[0].LikeCount)
	assert.Empty(t, feed[0].Comments)
	assert.NotNil(t, feed[0].Comments)

	assert.Equal(t, p1.ID, feed[1].ID)
	assert.Equal(t, int64(1), feed[1].LikeCount)
	require.Len(t, feed[1].Comments, 2)
	// 评论按发表顺序
	assert.Equal(t, "@bob", feed[1].Comments[0].Username)
	assert.Equal(t, "nice", feed[1].Comments[0].Content)
	assert.Equal(t, "thanks", feed[1].Comments[1].Content)
}

func TestDeletePost_Permissions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userSvc := service.NewUserService(db, nil)
	postSvc := service.NewPostService(db)

	alice := registerUser(t, userSvc, "@alice", "alice@example.com")
	bob := registerUser(t, userSvc, "@bob", "bob@example.com")
	admin := registerUser(t, userSvc, "@admin", "admin@example.com")
	makeAdmin(t, db, admin.ID)

	p1, err := postSvc.CreatePost(alice.ID, "mine", "")
	require.NoError(t, err)
	p2, err := postSvc.CreatePost(alice.ID, "also mine", "")
	require.NoError(t, err)

	// 路人删不掉
	err = postSvc.DeletePost(ctx, bob.ID, p1.ID)
	assert.ErrorIs(t, err, model.ErrPermissionDenied)

	// 作者可删
	require.NoError(t, postSvc.DeletePost(ctx, alice.ID, p1.ID))
	_, err = postSvc.GetPost(p1.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// 管理员可删别人的帖子
	require.NoError(t, postSvc.DeletePost(ctx, admin.ID, p2.ID))

	err = postSvc.DeletePost(ctx, alice.ID, 9999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeletePost_CascadesCommentsAndLikes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userSvc := service.NewUserService(db, nil)
	postSvc := service.NewPostService(db)
	newTestRedis(t)
	likeSvc := service.NewLikeService(db)

	alice := registerUser(t, userSvc, "@alice", "alice@example.com")
	bob := registerUser(t, userSvc, "@bob", "bob@example.com")

	post, err := postSvc.CreatePost(alice.ID, "to be removed", "")
	require.NoError(t, err)
	_, err = postSvc.AddComment(bob.ID, post.ID, "bye")
	require.NoError(t, err)
	_, _, err = likeSvc.Toggle(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	require.NoError(t, postSvc.DeletePost(ctx, alice.ID, post.ID))

	var comments int64
	require.NoError(t, db.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	assert.Zero(t, comments)

	var likes int64
	require.NoError(t, db.Model(&model.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error)
	assert.Zero(t, likes)

	feed, err := postSvc.ListFeed(ctx)
	require.NoError(t, err)
	assert.Empty(t, feed)
}
