package db

import (
	"fmt"

	"github.com/ubuygold/folioapi/internal/config"
	"github.com/ubuygold/folioapi/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned (wrapped) when a lookup or update matches no row.
var ErrNotFound = gorm.ErrRecordNotFound

// Service is the storage interface the HTTP layer talks to.
// Every method maps to a single parameterized statement unless noted.
type Service interface {
	PortfolioStore
	BlogStore
	MessageStore
	AgentStore
	APIKeyStore
	IntegrationStore
	UsageStore
	ReferenceStore
	UserStore

	GetDB() *gorm.DB
	Close() error
}

type gormService struct {
	db *gorm.DB
}

// NewService opens the configured database and migrates the schema.
func NewService(cfg config.DatabaseConfig) (Service, error) {
	database, err := Init(cfg)
	if err != nil {
		return nil, err
	}
	return &gormService{db: database}, nil
}

// Init initializes the database connection based on the provided configuration.
func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Type {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Type == "sqlite" {
		// One connection keeps in-memory databases alive and serializes sqlite writers.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.PortfolioItem{},
		&model.BlogPost{},
		&model.Message{},
		&model.Agent{},
		&model.APIKey{},
		&model.Integration{},
		&model.UsageLog{},
		&model.Category{},
		&model.Technology{},
		&model.User{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

func (s *gormService) GetDB() *gorm.DB {
	return s.db
}

func (s *gormService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// updateRecord writes every column of record except CreatedAt and associations,
// then reloads it so the caller sees the stored row.
func updateRecord[T any](db *gorm.DB, record *T) error {
	result := db.Model(record).Select("*").Omit("CreatedAt", clause.Associations).Updates(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return db.First(record).Error
}

// deleteByID removes the row with the given primary key.
func deleteByID[T any](db *gorm.DB, id any) error {
	var zero T
	result := db.Delete(&zero, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
