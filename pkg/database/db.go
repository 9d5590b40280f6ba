package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arnavshah/group-planner-go/pkg/config"
	"github.com/arnavshah/group-planner-go/pkg/models"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	KeyPreview string     `json:"key_preview"`
	Name       string     `gorm:"not null" json:"name"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table, one row per key and day
type APIUsage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KeyID        uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date         string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalSlots   int    `gorm:"default:0" json:"total_slots"`
	TotalPlans   int    `gorm:"default:0" json:"total_plans"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlanChoice records the plan a group settled on for one period
type PlanChoice struct {
	ID        string      `gorm:"primaryKey;size:36" json:"id"`
	KeyID     uint        `gorm:"index;not null" json:"key_id"`
	Period    string      `gorm:"not null" json:"period"`
	Rank      int         `json:"rank"`
	Plan      models.Plan `gorm:"serializer:json" json:"plan"`
	CreatedAt time.Time   `json:"created_at"`
}

// Open connects to postgres when a DSN is configured, to sqlite otherwise,
// and migrates the schema
func Open(cfg config.DBConfig, log *zap.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.DSN != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
		log.Info("using postgres")
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
		log.Info("using sqlite", zap.String("path", cfg.Path))
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &PlanChoice{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}
