// dao/subscriber_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	sub_errors "github.com/dev-mohitbeniwal/subexpiry/errors"
	logger "github.com/dev-mohitbeniwal/subexpiry/logging"
	"github.com/dev-mohitbeniwal/subexpiry/model"
)

// SubscriberDAO mirrors expirations into the relational users table.
// It never reads rows back; the cache is the source of truth.
type SubscriberDAO struct {
	DB *gorm.DB
}

func NewSubscriberDAO(db *gorm.DB) *SubscriberDAO {
	return &SubscriberDAO{DB: db}
}

// MarkExpired sets expireDate to the sentinel for the row matching fbid and
// returns the number of rows changed.
func (dao *SubscriberDAO) MarkExpired(ctx context.Context, fbid, sentinel string) (int64, error) {
	start := time.Now()
	result := dao.DB.WithContext(ctx).
		Model(&model.Subscriber{}).
		Where("fbid = ?", fbid).
		Update("expireDate", sentinel)

	duration := time.Since(start)
	if result.Error != nil {
		logger.Error("Failed to update subscriber expiration",
			zap.Error(result.Error),
			zap.String("fbid", fbid),
			zap.Duration("duration", duration))
		return 0, fmt.Errorf("%w: %v", sub_errors.ErrDatabaseOperation, result.Error)
	}

	logger.Debug("Subscriber expiration updated",
		zap.String("fbid", fbid),
		zap.Int64("rowsAffected", result.RowsAffected),
		zap.Duration("duration", duration))
	return result.RowsAffected, nil
}
