// Package syncer реализует серверную часть цикла синхронизации:
// сбор изменений (pull) и последовательную обработку batch-а
// клиентских изменений (push) с обнаружением и разрешением конфликтов.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vodokanal/labsync/internal/clock"
	"github.com/vodokanal/labsync/internal/conflict"
	"github.com/vodokanal/labsync/internal/models"
	"github.com/vodokanal/labsync/internal/server/storage"
	"github.com/vodokanal/labsync/internal/validation"
	"github.com/vodokanal/labsync/pkg/metrics"
)

//go:generate moq -out store_mock.go . Store

// Store определяет персистентные зависимости оркестратора:
// хранилище записей с CAS-семантикой и append-only audit-сток
type Store interface {
	// GetRecord возвращает текущее состояние сущности (включая tombstones).
	// Возвращает storage.ErrRecordNotFound, если записи нет.
	GetRecord(ctx context.Context, entityType, entityID string) (*models.ChangeRecord, error)

	// WriteRecord применяет запись по compare-and-swap: expectedVersion == 0
	// означает создание, иначе запись проходит только при совпадении версии.
	// Возвращает storage.ErrVersionMismatch при проигрыше CAS.
	WriteRecord(ctx context.Context, expectedVersion int64, rec *models.ChangeRecord) error

	// ListChangedSince возвращает записи с LastModified > since, включая tombstones
	ListChangedSince(ctx context.Context, since time.Time) ([]*models.ChangeRecord, error)

	// RecordConflict добавляет audit-след разрешенного конфликта.
	// Отказ стока оборачивается в storage.ErrAuditFailure.
	RecordConflict(ctx context.Context, backup *models.ConflictBackup) error

	// ApplyResolution атомарно записывает победителя конфликта и audit-след
	// проигравшего: либо обе записи, либо ни одной
	ApplyResolution(ctx context.Context, expectedVersion int64, rec *models.ChangeRecord, backup *models.ConflictBackup) error
}

// Машинные коды причин отклонения записи в push-отчете
const (
	// RejectReasonValidation — запись не прошла структурную валидацию
	RejectReasonValidation = "validation"
	// RejectReasonAudit — audit-сток отказал при разрешении конфликта
	RejectReasonAudit = "audit failure"
	// RejectReasonContention — исчерпаны повторы CAS-цикла по сущности
	RejectReasonContention = "contention"
)

// maxCASAttempts ограничивает повторы цикла чтение-детекция-запись
// для одной записи при параллельных sync-сессиях по той же сущности
const maxCASAttempts = 5

// ConflictResult описывает один разрешенный конфликт в отчете
type ConflictResult struct {
	EntityID      string
	Winner        conflict.Winner
	ClientVersion int64
	ServerVersion int64
}

// RejectedRecord описывает отклоненную запись и причину
type RejectedRecord struct {
	EntityID string
	Reason   string
	Message  string
}

// PushReport — полный отчет о push-batch-е: каждая запись batch-а
// попадает ровно в один из трех buckets
type PushReport struct {
	Accepted  []string
	Conflicts []ConflictResult
	Rejected  []RejectedRecord
}

// PullResult — результат pull-цикла
type PullResult struct {
	// ServerTimestamp — серверное время начала выборки; клиент
	// сохраняет его как watermark следующей синхронизации только
	// после успешного применения всех изменений
	ServerTimestamp time.Time
	Changes         []*models.ChangeRecord
}

// Orchestrator координирует pull- и push-циклы синхронизации.
// Не держит разделяемого состояния между вызовами: единственный
// мутируемый ресурс — хранилище, все записи идут через CAS.
type Orchestrator struct {
	store     Store
	clock     clock.Clock
	collector *Collector
	logger    *slog.Logger
}

// New creates a new sync orchestrator
func New(store Store, clk clock.Clock, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		clock:     clk,
		collector: NewCollector(store, clk, logger),
		logger:    logger,
	}
}

// Pull возвращает изменения с момента since и свежий серверный
// timestamp. Ошибка коллектора фатальна для сессии и отдается
// вызывающему без внутренних повторов.
func (o *Orchestrator) Pull(ctx context.Context, deviceID string, since time.Time) (*PullResult, error) {
	sess := newSession(deviceID, o.logger)
	sess.transition(statePullInProgress)

	// Timestamp берется до выборки: записи, измененные во время
	// запроса, попадут в следующий pull, но никогда не потеряются
	serverTimestamp := o.clock.Now()

	changes, err := o.collector.Collect(ctx, since)
	if err != nil {
		sess.fail(err)
		metrics.SyncSessionsFailed.WithLabelValues("pull").Inc()
		return nil, err
	}

	metrics.PullBatchSize.Observe(float64(len(changes)))

	sess.transition(statePullComplete)
	sess.transition(stateIdle)

	o.logger.Info("Pull completed",
		"device_id", deviceID,
		"since", since,
		"changes", len(changes))

	return &PullResult{
		Changes:         changes,
		ServerTimestamp: serverTimestamp,
	}, nil
}

// Push обрабатывает batch клиентских изменений строго в порядке
// подачи. Ошибка одной записи не прерывает batch: validation- и
// audit-отказы попадают в bucket rejected, конфликты разрешаются
// через LWW и попадают в conflicts.
//
// Push возвращает частичный отчет вместе с ошибкой в двух случаях:
// отмена контекста и инфраструктурный отказ хранилища. Уже
// зафиксированные записи не откатываются.
func (o *Orchestrator) Push(ctx context.Context, deviceID string, records []*models.ChangeRecord) (*PushReport, error) {
	sess := newSession(deviceID, o.logger)
	sess.transition(statePushInProgress)

	start := time.Now()
	defer func() {
		metrics.PushBatchDuration.Observe(time.Since(start).Seconds())
	}()

	report := &PushReport{
		Accepted:  []string{},
		Conflicts: []ConflictResult{},
		Rejected:  []RejectedRecord{},
	}

	for i, rec := range records {
		// Отмена останавливает обработку последующих записей;
		// уже закоммиченные остаются, отчет покрывает обработанное
		if err := ctx.Err(); err != nil {
			sess.fail(err)
			metrics.SyncSessionsFailed.WithLabelValues("push").Inc()
			return report, fmt.Errorf("push cancelled after %d of %d records: %w", i, len(records), err)
		}

		if err := o.processRecord(ctx, rec, report); err != nil {
			// Инфраструктурный отказ: остаток batch-а не обрабатывается
			sess.fail(err)
			metrics.SyncSessionsFailed.WithLabelValues("push").Inc()
			return report, fmt.Errorf("push aborted at record %d of %d: %w", i+1, len(records), err)
		}
	}

	sess.transition(statePushComplete)
	sess.transition(stateIdle)

	o.logger.Info("Push completed",
		"device_id", deviceID,
		"records", len(records),
		"accepted", len(report.Accepted),
		"conflicts", len(report.Conflicts),
		"rejected", len(report.Rejected))

	return report, nil
}

// processRecord прогоняет одну запись через цикл
// валидация -> чтение -> детекция -> запись/разрешение.
// Возвращает ошибку только при инфраструктурном отказе хранилища;
// все per-record исходы складываются в отчет.
func (o *Orchestrator) processRecord(ctx context.Context, rec *models.ChangeRecord, report *PushReport) error {
	if err := validation.ValidateRecord(rec); err != nil {
		o.reject(report, rec, RejectReasonValidation, err.Error())
		return nil
	}

	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		current, err := o.store.GetRecord(ctx, rec.EntityType, rec.EntityID)
		if err != nil {
			if !errors.Is(err, storage.ErrRecordNotFound) {
				return fmt.Errorf("failed to read current state of %s/%s: %w", rec.EntityType, rec.EntityID, err)
			}
			current = nil
		}

		// Идемпотентный повтор: состояние уже применено — никаких
		// повторных записей и дубликатов в audit
		if current != nil && rec.Version <= current.Version && current.SameState(rec) {
			o.accept(report, rec)
			return nil
		}

		applied, retry, err := o.applyOutcome(ctx, rec, current, report)
		if err != nil {
			return err
		}
		if retry {
			// CAS проигран параллельной сессии: свежий цикл детекции
			o.logger.Debug("Concurrent write detected, rerunning detection cycle",
				"entity_type", rec.EntityType,
				"entity_id", rec.EntityID,
				"attempt", attempt+1)
			continue
		}
		if applied {
			return nil
		}
	}

	o.reject(report, rec, RejectReasonContention,
		fmt.Sprintf("exceeded %d concurrent write retries", maxCASAttempts))
	return nil
}

// applyOutcome применяет результат детекции для одной записи.
// Возвращает (applied, retry, err): retry означает проигранный CAS
// и необходимость свежего цикла детекции.
func (o *Orchestrator) applyOutcome(ctx context.Context, rec, current *models.ChangeRecord, report *PushReport) (bool, bool, error) {
	switch conflict.Detect(rec, current) {
	case conflict.OutcomeCreate:
		applied := rec.Clone()
		if err := o.store.WriteRecord(ctx, 0, applied); err != nil {
			if errors.Is(err, storage.ErrVersionMismatch) {
				return false, true, nil
			}
			return false, false, fmt.Errorf("failed to create %s/%s: %w", rec.EntityType, rec.EntityID, err)
		}
		o.accept(report, rec)
		return true, false, nil

	case conflict.OutcomeCleanUpdate:
		// Запись основана на актуальной версии: применяем payload
		// клиента со свежеинкрементированной версией
		applied := rec.Clone()
		applied.Version = current.Version + 1
		if err := o.store.WriteRecord(ctx, current.Version, applied); err != nil {
			if errors.Is(err, storage.ErrVersionMismatch) {
				return false, true, nil
			}
			return false, false, fmt.Errorf("failed to update %s/%s: %w", rec.EntityType, rec.EntityID, err)
		}
		o.accept(report, rec)
		return true, false, nil

	default: // OutcomeConflict
		return o.resolveConflict(ctx, rec, current, report)
	}
}

// resolveConflict разрешает конфликт стратегией LWW и фиксирует
// исход: победивший payload (если выиграл клиент) и audit-след
// проигравшей стороны атомарно, в одной транзакции хранилища.
func (o *Orchestrator) resolveConflict(ctx context.Context, rec, current *models.ChangeRecord, report *PushReport) (bool, bool, error) {
	res := conflict.Resolve(rec, current)

	if res.Winner == conflict.WinnerClient {
		backup := o.newBackup(current, res)
		if err := o.store.ApplyResolution(ctx, current.Version, res.Applied, backup); err != nil {
			switch {
			case errors.Is(err, storage.ErrVersionMismatch):
				return false, true, nil
			case errors.Is(err, storage.ErrAuditFailure):
				// Победивший write без audit-следа недопустим:
				// транзакция откатилась целиком, запись отклоняется
				o.reject(report, rec, RejectReasonAudit, err.Error())
				return true, false, nil
			default:
				return false, false, fmt.Errorf("failed to apply resolution for %s/%s: %w", rec.EntityType, rec.EntityID, err)
			}
		}
		o.recordConflictResult(report, rec, current, res)
		return true, false, nil
	}

	// Сервер победил: хранимая запись не меняется, аудируется
	// проигравший клиентский payload
	backup := o.newBackup(rec, res)
	if err := o.store.RecordConflict(ctx, backup); err != nil {
		if errors.Is(err, storage.ErrAuditFailure) {
			o.reject(report, rec, RejectReasonAudit, err.Error())
			return true, false, nil
		}
		return false, false, fmt.Errorf("failed to record conflict audit for %s/%s: %w", rec.EntityType, rec.EntityID, err)
	}
	o.recordConflictResult(report, rec, current, res)
	return true, false, nil
}

// newBackup формирует audit-запись для проигравшей стороны конфликта
func (o *Orchestrator) newBackup(losing *models.ChangeRecord, res conflict.Resolution) *models.ConflictBackup {
	return &models.ConflictBackup{
		ID:            uuid.New().String(),
		Losing:        *losing.Clone(),
		Winner:        res.Winner.String(),
		WinnerVersion: res.Applied.Version,
		Strategy:      models.StrategyLWW,
		ResolvedAt:    o.clock.Now(),
	}
}

func (o *Orchestrator) accept(report *PushReport, rec *models.ChangeRecord) {
	report.Accepted = append(report.Accepted, rec.EntityID)
	metrics.PushRecordsProcessed.WithLabelValues("accepted", rec.EntityType).Inc()
}

func (o *Orchestrator) reject(report *PushReport, rec *models.ChangeRecord, reason, message string) {
	entityID := ""
	if rec != nil {
		entityID = rec.EntityID
	}
	report.Rejected = append(report.Rejected, RejectedRecord{
		EntityID: entityID,
		Reason:   reason,
		Message:  message,
	})
	entityType := "unknown"
	if rec != nil && rec.EntityType != "" {
		entityType = rec.EntityType
	}
	metrics.PushRecordsProcessed.WithLabelValues("rejected", entityType).Inc()

	o.logger.Warn("Change record rejected",
		"entity_id", entityID,
		"reason", reason,
		"message", message)
}

func (o *Orchestrator) recordConflictResult(report *PushReport, rec, current *models.ChangeRecord, res conflict.Resolution) {
	report.Conflicts = append(report.Conflicts, ConflictResult{
		EntityID:      rec.EntityID,
		Winner:        res.Winner,
		ClientVersion: rec.Version,
		ServerVersion: current.Version,
	})
	metrics.PushRecordsProcessed.WithLabelValues("conflict", rec.EntityType).Inc()
	metrics.ConflictsResolved.WithLabelValues(res.Winner.String()).Inc()

	o.logger.Info("Conflict resolved",
		"entity_type", rec.EntityType,
		"entity_id", rec.EntityID,
		"winner", res.Winner.String(),
		"client_version", rec.Version,
		"server_version", current.Version)
}
