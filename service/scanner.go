// service/scanner.go
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	sub_errors "github.com/dev-mohitbeniwal/subexpiry/errors"
	logger "github.com/dev-mohitbeniwal/subexpiry/logging"
	"github.com/dev-mohitbeniwal/subexpiry/model"
)

// ScanStats counts what one walk over the keyspace saw.
type ScanStats struct {
	Keys    int
	Missing int
	Failed  int
}

// KeyScanner enumerates tracked entries and reads their values.
type KeyScanner struct {
	cache CacheStore
}

func NewKeyScanner(cache CacheStore) *KeyScanner {
	return &KeyScanner{cache: cache}
}

// Scan walks every key and hands entries with a value to visit as they are read.
// Keys that vanish before the read, or hold an empty value, are skipped. A read
// error skips that key only. The returned error is set only when the
// enumeration itself fails.
func (s *KeyScanner) Scan(ctx context.Context, visit func(model.TrackedEntry)) (ScanStats, error) {
	var stats ScanStats
	seen := make(map[string]struct{})

	err := s.cache.ScanKeys(ctx, func(id string) error {
		if _, dup := seen[id]; dup {
			return nil
		}
		seen[id] = struct{}{}
		stats.Keys++

		value, found, err := s.cache.Get(ctx, id)
		if err != nil {
			stats.Failed++
			logger.Error("Failed to read cache value", zap.String("fbid", id), zap.Error(err))
			return nil
		}
		if !found || value == "" {
			stats.Missing++
			logger.Debug(fmt.Sprintf("FBID %s not found in cache.", id), zap.String("fbid", id))
			return nil
		}

		visit(model.TrackedEntry{ID: id, Value: value})
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("%w: %v", sub_errors.ErrKeyScanFailed, err)
	}

	if stats.Keys == 0 {
		logger.Info("No keys found in cache.")
	}
	return stats, nil
}
