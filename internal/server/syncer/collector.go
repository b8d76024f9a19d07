package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/vodokanal/labsync/internal/clock"
	"github.com/vodokanal/labsync/internal/models"
)

// Collector собирает упорядоченный набор изменений, подлежащих
// передаче клиенту. Только чтение, никаких side effects.
type Collector struct {
	store  Store
	clock  clock.Clock
	logger *slog.Logger
}

// NewCollector creates a new change collector
func NewCollector(store Store, clk clock.Clock, logger *slog.Logger) *Collector {
	return &Collector{
		store:  store,
		clock:  clk,
		logger: logger,
	}
}

// Collect возвращает все записи с LastModified > since, включая
// tombstones, упорядоченные по (LastModified, EntityID). Результат —
// конечный снимок "изменений на данный момент", не живой поток.
//
// Watermark из будущего (рассинхронизированные часы клиента)
// прижимается к текущему серверному времени.
func (c *Collector) Collect(ctx context.Context, since time.Time) ([]*models.ChangeRecord, error) {
	now := c.clock.Now()
	if since.After(now) {
		c.logger.Warn("Sync watermark is in the future, clamping to server time",
			"since", since,
			"server_time", now)
		since = now
	}

	records, err := c.store.ListChangedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed records: %w", err)
	}

	// Хранилище обязано отдавать записи упорядоченными, но контракт
	// Collector-а детерминирован для любой реализации Store
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].LastModified.Equal(records[j].LastModified) {
			return records[i].EntityID < records[j].EntityID
		}
		return records[i].LastModified.Before(records[j].LastModified)
	})

	return records, nil
}
