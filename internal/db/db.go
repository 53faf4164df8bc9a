package db

import (
	"fmt"
	"log"

	"risehub/internal/config"
	"risehub/internal/models"

	"github.com/gosimple/slug"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Models is the migration list, shared with tests.
var Models = []interface{}{
	&models.User{},
	&models.Character{},
	&models.Perk{},
	&models.ModAttribute{},
	&models.WeaponMod{},
	&models.Weapon{},
	&models.Trait{},
	&models.PerkAssignment{},
	&models.Catalyst{},
	&models.Build{},
	&models.Artifact{},
	&models.ArtifactAttribute{},
	&models.BuildWeapon{},
	&models.BuildWeaponTrait{},
	&models.BuildWeaponPerk{},
	&models.BuildWeaponCatalyst{},
	&models.BuildWeaponMod{},
	&models.Vote{},
	&models.NewsPost{},
	&models.NewsVote{},
	&models.Comment{},
	&models.LFGPost{},
	&models.ClanRecruitment{},
	&models.TaskTemplate{},
	&models.UserTask{},
	&models.ApiKey{},
	&models.LeaderboardSnapshot{},
	&models.LeaderboardEntry{},
}

func Init(cfg *config.Config) {
	conn, err := Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		log.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	DB = conn
	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedCharacters(DB)
}

// Open connects with the given dialector; tests pass an in-memory sqlite one.
func Open(dialector gorm.Dialector, opts ...gorm.Option) (*gorm.DB, error) {
	if len(opts) == 0 {
		opts = append(opts, &gorm.Config{})
	}
	conn, err := gorm.Open(dialector, opts...)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(Models...)
}

var defaultCharacters = []string{
	"Wolf", "Ning Fei", "Jinmo", "Tan-2", "Zeta", "Xuan Zhi",
}

// seedCharacters 首次启动时写入角色列表
func seedCharacters(conn *gorm.DB) {
	var count int64
	conn.Model(&models.Character{}).Count(&count)
	if count > 0 {
		log.Println("Characters already seeded, skipping")
		return
	}

	for _, name := range defaultCharacters {
		ch := models.Character{Name: name, Slug: slug.Make(name)}
		if err := conn.Create(&ch).Error; err != nil {
			log.Printf("Failed to create character %s: %v", name, err)
		}
	}
	log.Println("Initial characters created successfully")
}
