package service_test

import (
	"testing"

	"whome/internal/model"
	"whome/internal/repository/mysql"
	"whome/internal/repository/redis"
	"whome/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一套独立的内存库，限制单连接避免 :memory: 分裂
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, mysql.AutoMigrate(db))
	return db
}

// newTestRedis 把全局 Redis 客户端指向 miniredis
func newTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	require.NoError(t, redis.Init(mr.Addr(), "", 0))
	return mr
}

func registerUser(t *testing.T, svc *service.UserService, username, email string) *model.User {
	t.Helper()
	user, err := svc.Register(username, email, "password123", "", "")
	require.NoError(t, err)
	return user
}

func makeAdmin(t *testing.T, db *gorm.DB, userID uint64) {
	t.Helper()
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", userID).
		Update("is_admin", true).Error)
}
