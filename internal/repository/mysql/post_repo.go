package mysql

import (
	"context"
	"errors"
	"time"

	"whome/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

// FeedPost 信息流行：帖子 + 作者展示属性 + 点赞数 + 评论，读侧拼装，不落库
type FeedPost struct {
	ID         uint64        `json:"id"`
	UserID     uint64        `json:"user_id"`
	Content    string        `json:"content"`
	Image      string        `json:"image,omitempty"`
	Username   string        `json:"username"`
	FirstName  string        `json:"first_name,omitempty"`
	LastName   string        `json:"last_name,omitempty"`
	Avatar     string        `json:"avatar,omitempty"`
	IsVerified bool          `json:"is_verified"`
	LikeCount  int64         `json:"like_count"`
	CreatedAt  time.Time     `json:"created_at"`
	Comments   []FeedComment `json:"comments"`
}

type FeedComment struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	return &post, err
}

// DeleteCascade 删帖级联：评论、点赞、帖子本体与删除事件同一事务
func (r *PostRepository) DeleteCascade(ctx context.Context, actorID, postID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Post{}, postID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return insertOutbox(tx, "post.deleted", actorID, postID)
	})
}

// ListFeed 全量信息流，新帖在前。三次批量查询拼装，避免逐帖回表
func (r *PostRepository) ListFeed(ctx context.Context) ([]FeedPost, error) {
	var posts []model.Post
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return []FeedPost{}, nil
	}

	postIDs := make([]uint64, 0, len(posts))
	userIDs := make([]uint64, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		userIDs = append(userIDs, p.UserID)
	}

	var authors []model.User
	if err := r.DB.WithContext(ctx).Where("id IN ?", userIDs).Find(&authors).Error; err != nil {
		return nil, err
	}
	authorByID := make(map[uint64]model.User, len(authors))
	for _, u := range authors {
		authorByID[u.ID] = u
	}

	type likeRow struct {
		PostID uint64
		N      int64
	}
	var likeRows []likeRow
	if err := r.DB.WithContext(ctx).Model(&model.Like{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Find(&likeRows).Error; err != nil {
		return nil, err
	}
	likesByPost := make(map[uint64]int64, len(likeRows))
	for _, lr := range likeRows {
		likesByPost[lr.PostID] = lr.N
	}

	type commentRow struct {
		PostID   uint64
		Username string
		Content  string
	}
	var commentRows []commentRow
	if err := r.DB.WithContext(ctx).Model(&model.Comment{}).
		Select("comments.post_id, users.username, comments.content").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.post_id IN ?", postIDs).
		Order("comments.id ASC").
		Find(&commentRows).Error; err != nil {
		return nil, err
	}
	commentsByPost := make(map[uint64][]FeedComment)
	for _, cr := range commentRows {
		commentsByPost[cr.PostID] = append(commentsByPost[cr.PostID], FeedComment{
			Username: cr.Username,
			Content:  cr.Content,
		})
	}

	feed := make([]FeedPost, 0, len(posts))
	for _, p := range posts {
		a := authorByID[p.UserID]
		fp := FeedPost{
			ID:         p.ID,
			UserID:     p.UserID,
			Content:    p.Content,
			Image:      p.Image,
			Username:   a.Username,
			FirstName:  a.FirstName,
			LastName:   a.LastName,
			Avatar:     a.Avatar,
			IsVerified: a.IsVerified,
			LikeCount:  likesByPost[p.ID],
			CreatedAt:  p.CreatedAt,
			Comments:   commentsByPost[p.ID],
		}
		if fp.Comments == nil {
			fp.Comments = []FeedComment{}
		}
		feed = append(feed, fp)
	}
	return feed, nil
}
