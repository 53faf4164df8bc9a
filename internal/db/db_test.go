package db

import (
	"testing"

	"risehub/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrateAndSeedCharacters(t *testing.T) {
	conn, err := Open(sqlite.Open("file:seed?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	sqlDB, _ := conn.DB()
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	if err := Migrate(conn); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	seedCharacters(conn)
	seedCharacters(conn) // second run is a no-op

	var chars []models.Character
	conn.Order("name ASC").Find(&chars)
	if len(chars) != len(defaultCharacters) {
		t.Fatalf("got %d characters, want %d", len(chars), len(defaultCharacters))
	}
	for _, c := range chars {
		if c.Name == "Ning Fei" && c.Slug != "ning-fei" {
			t.Errorf("slug for %s = %q", c.Name, c.Slug)
		}
	}
}
