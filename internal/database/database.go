package database

import (
	"context"
	"fmt"
	"time"

	"corpus-backend/internal/config"
	"corpus-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Sequences that hand out ids for rows created at runtime. Imported rows keep
// their own ids; ResetSequences moves both sequences past them.
const (
	ConversationIDSequence = "conversation_id_seq"
	LineIDSequence         = "line_id_seq"
)

type Database struct {
	*gorm.DB
	config config.DatabaseConfig
}

func Connect(cfg config.DatabaseConfig) (*Database, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
		PrepareStmt:                              true, // Enable prepared statement cache
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		logrus.WithError(err).Error("Failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Failed to get underlying sql.DB")
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		logrus.WithError(err).Error("Failed to ping database")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	logrus.Info("Database connection established successfully")

	database := &Database{
		DB:     db,
		config: cfg,
	}

	if err := autoMigrate(db); err != nil {
		logrus.WithError(err).Error("Failed to run auto migration")
		return nil, fmt.Errorf("failed to run auto migration: %w", err)
	}

	return database, nil
}

func (d *Database) WithContext(ctx context.Context) *gorm.DB {
	return d.DB.WithContext(ctx)
}

func (d *Database) GetQueryTimeout() time.Duration {
	return d.config.QueryTimeout
}

func (d *Database) HealthCheck(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ResetSequences makes the next runtime ids follow the largest stored ids.
func ResetSequences(tx *gorm.DB) error {
	resets := []struct {
		sequence, table, column string
	}{
		{ConversationIDSequence, "conversations", "conversation_id"},
		{LineIDSequence, "lines", "line_id"},
	}
	for _, r := range resets {
		sql := fmt.Sprintf("SELECT setval('%s', (SELECT COALESCE(MAX(%s), -1) + 1 FROM %s), false)", r.sequence, r.column, r.table)
		if err := tx.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to reset %s: %w", r.sequence, err)
		}
	}
	return nil
}

func autoMigrate(db *gorm.DB) error {
	logrus.Info("Running auto migration...")

	err := db.AutoMigrate(
		&models.Movie{},
		&models.Character{},
		&models.Conversation{},
		&models.Line{},
		&models.SyncLog{},
	)
	if err != nil {
		return err
	}

	for _, seq := range []string{ConversationIDSequence, LineIDSequence} {
		if err := db.Exec(fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s MINVALUE 0 START WITH 0", seq)).Error; err != nil {
			return fmt.Errorf("failed to create sequence %s: %w", seq, err)
		}
	}

	logrus.Info("Auto migration completed successfully")
	return nil
}
