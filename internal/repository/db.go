package repository

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lovetasks/internal/model"
)

// NewDB opens a SQLite database, runs migrations and seeds the gift catalog.
func NewDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "lovetasks.db"
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Relationship{},
		&model.RelationshipRequest{},
		&model.Anniversary{},
		&model.Task{},
		&model.PointHistory{},
		&model.Gift{},
		&model.RedeemedGift{},
	); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	if err := seedGiftCatalog(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedGiftCatalog inserts the default catalog on first start. The catalog is
// immutable afterwards; an already populated table is left alone.
func seedGiftCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Gift{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count gifts: %w", err)
	}
	if count > 0 {
		return nil
	}

	catalog := []model.Gift{
		{ID: uuid.NewString(), Name: "Love Flowers", Description: "A virtual bouquet to say you care", Type: model.GiftFlower, RequiredPoints: 50},
		{ID: uuid.NewString(), Name: "Love Pet", Description: "A cuddly virtual pet to keep you company", Type: model.GiftPet, RequiredPoints: 100},
		{ID: uuid.NewString(), Name: "Love Ring", Description: "A ring that stands for forever", Type: model.GiftRing, RequiredPoints: 200},
		{ID: uuid.NewString(), Name: "Romantic Dinner", Description: "A home-cooked candlelit dinner", Type: model.GiftOther, RequiredPoints: 150},
		{ID: uuid.NewString(), Name: "Movie Night", Description: "Watch a favorite movie together", Type: model.GiftOther, RequiredPoints: 80},
	}
	if err := db.Create(&catalog).Error; err != nil {
		return fmt.Errorf("seed gifts: %w", err)
	}
	return nil
}

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	// Ignore DSNs with explicit mode=memory or network.
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	// Strip file: prefix if present.
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
