package repository

import (
	"context"
	"time"

	"corpus-backend/internal/corpus"
	"corpus-backend/internal/database"
	"corpus-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const importBatchSize = 1000

// Import replaces the stored corpus with r in one transaction and records the
// outcome as a sync log. r is validated as a graph before anything is written.
func (r *PostgresRepository) Import(ctx context.Context, records *corpus.Records, source string) (*models.SyncLog, error) {
	syncLog := &models.SyncLog{
		SyncType: "import",
		Status:   "failed",
		Source:   source,
		SyncedAt: time.Now().UTC(),
	}

	fail := func(err error) (*models.SyncLog, error) {
		syncLog.ErrorMessage = err.Error()
		if lerr := r.CreateSyncLog(context.WithoutCancel(ctx), syncLog); lerr != nil {
			r.logger.WithError(lerr).Error("Failed to record import failure")
		}
		return syncLog, err
	}

	if _, err := corpus.Build(records); err != nil {
		return fail(err)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("TRUNCATE lines, conversations, characters, movies").Error; err != nil {
			return err
		}
		if err := createInBatches(tx, records.Movies); err != nil {
			return err
		}
		if err := createInBatches(tx, records.Characters); err != nil {
			return err
		}
		if err := createInBatches(tx, records.Conversations); err != nil {
			return err
		}
		if err := createInBatches(tx, records.Lines); err != nil {
			return err
		}
		return database.ResetSequences(tx)
	})
	if err != nil {
		return fail(writeError(err))
	}

	syncLog.Status = "success"
	syncLog.Movies = len(records.Movies)
	syncLog.Characters = len(records.Characters)
	syncLog.Conversations = len(records.Conversations)
	syncLog.Lines = len(records.Lines)
	if err := r.CreateSyncLog(ctx, syncLog); err != nil {
		r.logger.WithError(err).Error("Failed to record import")
	}

	r.logger.WithFields(logrus.Fields{
		"source":        source,
		"movies":        syncLog.Movies,
		"characters":    syncLog.Characters,
		"conversations": syncLog.Conversations,
		"lines":         syncLog.Lines,
	}).Info("Corpus imported")
	return syncLog, nil
}

func createInBatches[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(&rows, importBatchSize).Error
}
