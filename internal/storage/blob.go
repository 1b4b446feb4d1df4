package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hammamikhairi/ottodough/internal/domain"
	"github.com/hammamikhairi/ottodough/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.BlobStore = (*MemoryBlobStore)(nil)
	_ domain.BlobStore = (*GormBlobStore)(nil)
)

// MemoryBlobStore keeps blobs in a map. Safe for concurrent access.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBlobStore creates an empty blob store.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

// Get returns a copy of the blob stored under key.
func (s *MemoryBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

// Put stores a copy of data under key.
func (s *MemoryBlobStore) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), data...)
	return nil
}

// BlobModel represents the blobs table.
type BlobModel struct {
	Key       string    `gorm:"column:blob_key;primaryKey"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName pins the table name.
func (BlobModel) TableName() string {
	return "blobs"
}

// GormBlobStore persists blobs in a SQL database through GORM.
type GormBlobStore struct {
	db  *gorm.DB
	log *logger.Logger
}

// OpenSQLite opens (or creates) a sqlite database at path. An empty path or
// ":memory:" gives an in-memory database.
func OpenSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		path = ":memory:"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every pooled connection to ":memory:" is a separate database.
	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// NewGormBlobStore creates the store and migrates its table.
func NewGormBlobStore(db *gorm.DB, log *logger.Logger) (*GormBlobStore, error) {
	if err := db.AutoMigrate(&BlobModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate blobs: %w", err)
	}
	return &GormBlobStore{db: db, log: log}, nil
}

// Get retrieves the blob stored under key.
func (s *GormBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var model BlobModel
	result := s.db.WithContext(ctx).Where("blob_key = ?", key).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find blob %s: %w", key, result.Error)
	}
	return model.Value, nil
}

// Put upserts the blob stored under key.
func (s *GormBlobStore) Put(ctx context.Context, key string, data []byte) error {
	model := BlobModel{Key: key, Value: data, UpdatedAt: time.Now()}
	if result := s.db.WithContext(ctx).Save(&model); result.Error != nil {
		return fmt.Errorf("failed to save blob %s: %w", key, result.Error)
	}
	s.log.Debug("stored blob %s (%d bytes)", key, len(data))
	return nil
}
