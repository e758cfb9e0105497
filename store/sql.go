package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const (
	highScoreKey = "high_score"
	dbFileName   = "scores.db"
)

// record is one name/value row, the high score lives under highScoreKey
type record struct {
	Name      string `gorm:"primaryKey;size:64"`
	Value     int
	UpdatedAt time.Time
}

func (record) TableName() string { return "scores" }

// SQLStore keeps the high score in a SQLite file through gorm
type SQLStore struct {
	db  *gorm.DB
	log zerolog.Logger
}

// OpenSQLStore opens or creates the database in dataDir
// An empty dataDir selects a private in-memory database
func OpenSQLStore(dataDir string, log zerolog.Logger) (*SQLStore, error) {
	dsn := "file::memory:"
	if dataDir != "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, dbFileName)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open score database: %w", err)
	}

	// in-memory databases are per connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&record{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate score table: %w", err)
	}

	s := &SQLStore{db: db, log: log.With().Str("component", "store").Logger()}
	s.log.Debug().Str("dsn", dsn).Msg("score database ready")
	return s, nil
}

func (s *SQLStore) Load(ctx context.Context) (int, error) {
	var r record
	err := s.db.WithContext(ctx).Where("name = ?", highScoreKey).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load high score: %w", err)
	}
	return r.Value, nil
}

// Save upserts the high score, a lower value never replaces a higher one
func (s *SQLStore) Save(ctx context.Context, score int) error {
	r := record{Name: highScoreKey, Value: score, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Set{
			{Column: clause.Column{Name: "value"}, Value: gorm.Expr("MAX(value, excluded.value)")},
			{Column: clause.Column{Name: "updated_at"}, Value: r.UpdatedAt},
		},
	}).Create(&r).Error
	if err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
