// Package dbtest provides throwaway migrated databases for tests.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"ecostore-api/internal/client"
	"ecostore-api/internal/config"
	"ecostore-api/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns an in-memory SQLite database private to t, with the schema
// applied. It is closed when t finishes.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := client.InitDBClient(config.Database{
		Driver: "sqlite",
		URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	require.NoError(t, client.Migrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// CreateUser stores a user holding the given session token.
func CreateUser(t testing.TB, db *gorm.DB, email, token string) *model.User {
	t.Helper()

	user := &model.User{Email: email, Name: email, SessionToken: token}
	require.NoError(t, db.Create(user).Error)
	return user
}
