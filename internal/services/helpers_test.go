package services

import (
	"strings"
	"testing"

	"risehub/internal/db"
	"risehub/internal/models"
	"risehub/internal/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points db.DB at a fresh in-memory sqlite database for one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := db.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := db.DB
	db.DB = conn
	utils.GetCache().Purge()
	t.Cleanup(func() {
		sqlDB.Close()
		db.DB = prev
		utils.GetCache().Purge()
	})
}

func mustCreate(t *testing.T, value interface{}) {
	t.Helper()
	if err := db.DB.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func createUser(t *testing.T, id, role string) *models.User {
	t.Helper()
	u := &models.User{Name: id, Email: id + "@example.com", Role: role}
	u.ID = id
	mustCreate(t, u)
	return u
}

func createCharacter(t *testing.T, id, name string) *models.Character {
	t.Helper()
	c := &models.Character{Name: name, Slug: strings.ToLower(name)}
	c.ID = id
	mustCreate(t, c)
	return c
}

func createBuild(t *testing.T, userID, characterID string) *models.Build {
	t.Helper()
	b, err := CreateBuild(userID, BuildInput{Title: "Build by " + userID, CharacterID: characterID})
	if err != nil {
		t.Fatalf("CreateBuild: %v", err)
	}
	return b
}

func countRows(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.DB.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}
