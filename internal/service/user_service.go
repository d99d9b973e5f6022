package service

import (
	"context"
	"log"
	"regexp"

	"whome/internal/model"
	"whome/internal/pkg"
	"whome/internal/repository/mysql"
	"whome/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 用户名形如 @alice_01，@ 后 3~20 位字母数字下划线
var usernameRe = regexp.MustCompile(`^@[A-Za-z0-9_]{3,20}$`)

type UserService struct {
	repo     *mysql.UserRepository
	sessions *redis.SessionRepository
	smtp     *pkg.SMTPConfig // 可为空，为空则不发通知邮件
}

func NewUserService(db *gorm.DB, smtp *pkg.SMTPConfig) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: db},
		sessions: &redis.SessionRepository{},
		smtp:     smtp,
	}
}

// Register 先校验用户名格式，再交给唯一索引裁决重名/重邮箱
func (s *UserService) Register(username, email, password, firstName, lastName string) (*model.User, error) {
	if !usernameRe.MatchString(username) {
		return nil, model.ErrUsernameInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 不区分“用户不存在”和“密码错误”，对外统一 bad credentials
func (s *UserService) Login(username, password string) (*pkg.Pair, *model.User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, nil, model.ErrBadCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil, model.ErrBadCredentials
	}

	if err := s.repo.TouchLastVisit(user.ID); err != nil {
		return nil, nil, err
	}

	token, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.sessions.Put(user.ID, token.AccessToken); err != nil {
		return nil, nil, err
	}
	return token, user, nil
}

func (s *UserService) Logout(usrID uint64) error {
	return s.sessions.Delete(usrID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	// 换新后旧 access 立即失效
	if err := s.sessions.Put(claims.UserID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// ResolveSession token -> 用户。签名、服务端会话、用户三关都过才算登录，
// 通过后滑动续期
func (s *UserService) ResolveSession(token string) (*model.User, error) {
	claims, err := pkg.ParseAccess(token)
	if err != nil {
		return nil, model.ErrBadCredentials
	}

	stored, err := s.sessions.Get(claims.UserID)
	if err != nil || stored != token {
		return nil, model.ErrBadCredentials
	}

	user, err := s.repo.FindByID(claims.UserID)
	if err != nil {
		return nil, model.ErrBadCredentials
	}

	if err := s.sessions.Extend(user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// SetVerified 管理员加 V，幂等。成功后尽力发一封通知邮件，失败只打日志
func (s *UserService) SetVerified(ctx context.Context, actorID, userID uint64) error {
	actor, err := s.repo.FindByID(actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin {
		return model.ErrPermissionDenied
	}

	if err := s.repo.SetVerified(ctx, actorID, userID); err != nil {
		return err
	}

	if s.smtp != nil {
		user, err := s.repo.FindByID(userID)
		if err == nil && user.Email != "" {
			if err := pkg.SendEmail(*s.smtp, user.Email, "You are verified", pkg.VerifiedNoticeHTML(user.Username)); err != nil {
				log.Printf("verified notice mail to %s: %v", user.Email, err)
			}
		}
	}
	return nil
}

// UpdateProfile 只改本人资料；avatar 传空串表示保持不变
func (s *UserService) UpdateProfile(userID uint64, firstName, lastName, avatar string) error {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return err
	}
	if avatar == "" {
		avatar = user.Avatar
	}
	return s.repo.UpdateProfile(userID, firstName, lastName, avatar)
}

func (s *UserService) GetProfile(username string) (*model.User, error) {
	return s.repo.FindByUsername(username)
}

func (s *UserService) GetByID(id uint64) (*model.User, error) {
	return s.repo.FindByID(id)
}

// ListUsers 管理后台用户列表
func (s *UserService) ListUsers(actorID uint64) ([]model.User, error) {
	actor, err := s.repo.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		return nil, model.ErrPermissionDenied
	}
	return s.repo.List()
}
