package service

import (
	"context"
	"log"
	"os"
	"strings"

	"whome/internal/model"
	"whome/internal/repository/mysql"

	"gorm.io/gorm"
)

type PostService struct {
	repo        *mysql.PostRepository
	commentRepo *mysql.CommentRepository
	userRepo    *mysql.UserRepository
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		repo:        &mysql.PostRepository{DB: db},
		commentRepo: &mysql.CommentRepository{DB: db},
		userRepo:    &mysql.UserRepository{DB: db},
	}
}

// CreatePost 空内容（去掉首尾空白后）一律拒绝
func (s *PostService) CreatePost(userID uint64, content, image string) (*model.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, model.ErrEmptyContent
	}

	post := &model.Post{
		UserID:  userID,
		Content: content,
		Image:   image,
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost 作者或管理员可删。级联删评论和点赞，
// 事务提交后再清理图片文件，清不掉只打日志
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint64) error {
	post, err := s.repo.FindByID(postID)
	if err != nil {
		return err
	}

	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return err
	}
	if post.UserID != actor.ID && !actor.IsAdmin {
		return model.ErrPermissionDenied
	}

	if err := s.repo.DeleteCascade(ctx, actorID, postID); err != nil {
		return err
	}

	if post.Image != "" {
		if err := os.Remove(post.Image); err != nil && !os.IsNotExist(err) {
			log.Printf("remove post image %s: %v", post.Image, err)
		}
	}
	return nil
}

// AddComment 帖子必须存在，空评论拒绝
func (s *PostService) AddComment(actorID, postID uint64, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, model.ErrEmptyContent
	}
	if _, err := s.repo.FindByID(postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  actorID,
		Content: content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PostService) ListFeed(ctx context.Context) ([]mysql.FeedPost, error) {
	return s.repo.ListFeed(ctx)
}

func (s *PostService) GetPost(postID uint64) (*model.Post, error) {
	return s.repo.FindByID(postID)
}
