package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/catalogo-poli/shop/internal/config"
	"github.com/catalogo-poli/shop/internal/models"
	"github.com/catalogo-poli/shop/internal/repo"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testSecret = []byte("test-jwt-secret")

var dbCounter atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// single connection keeps the in-memory database alive and serializes
	// concurrent transactions
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return &repo.GormRepo{DB: newTestDB(t)}
}

func createArticle(t *testing.T, r *repo.GormRepo, name string, price float64, stock int) *models.Article {
	t.Helper()
	article := models.Article{Name: name, Category: "Electrónica", Price: price, Stock: stock}
	require.NoError(t, r.DB.Create(&article).Error)
	return &article
}

func createUser(t *testing.T, r *repo.GormRepo, username string) *models.User {
	t.Helper()
	user := models.User{
		FullName:     "Test User",
		Username:     username,
		PasswordHash: "irrelevant",
		Role:         models.RoleShopper,
	}
	require.NoError(t, r.DB.Create(&user).Error)
	return &user
}
