package services

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/safatanc/hotel-audit-core/internal/app/errors"
	"github.com/safatanc/hotel-audit-core/internal/app/models"
	"github.com/safatanc/hotel-audit-core/internal/app/pkg"
	"github.com/safatanc/hotel-audit-core/internal/infrastructures"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultRetentionDays = 1095
	scheduleSweepLockKey = "lock:maintenance:schedule-sweep"
	scheduleSweepLockTTL = 5 * time.Minute
)

type MaintenanceService struct {
	db     *gorm.DB
	locker *redislock.Client
	clock  func() time.Time
}

// NewMaintenanceService builds the service. A nil locker runs the sweep
// without cross-replica locking.
func NewMaintenanceService(db *gorm.DB, locker *redislock.Client) *MaintenanceService {
	return &MaintenanceService{
		db:     db,
		locker: locker,
		clock:  func() time.Time { return time.Now().UTC() },
	}
}

// CleanupOldData deletes audits created before now minus retentionDays,
// items first, in one transaction.
func (s *MaintenanceService) CleanupOldData(ctx context.Context, retentionDays int) (*models.CleanupResult, error) {
	if retentionDays <= 0 {
		return nil, errors.NewBadRequestError("Retention days must be positive")
	}

	cutoff := s.clock().AddDate(0, 0, -retentionDays)
	result := &models.CleanupResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		oldAudits := tx.Model(&models.Audit{}).Select("id").Where("created_at < ?", cutoff)

		items := tx.Where("audit_id IN (?)", oldAudits).Delete(&models.AuditItem{})
		if items.Error != nil {
			return items.Error
		}
		result.DeletedItems = items.RowsAffected

		audits := tx.Where("created_at < ?", cutoff).Delete(&models.Audit{})
		if audits.Error != nil {
			return audits.Error
		}
		result.DeletedAudits = audits.RowsAffected

		return nil
	})
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to clean up old audit data")
	}

	infrastructures.GetLogger().WithFields(logrus.Fields{
		"retention_days": retentionDays,
		"cutoff":         cutoff,
		"deleted_items":  result.DeletedItems,
		"deleted_audits": result.DeletedAudits,
	}).Info("old audit data cleaned up")

	return result, nil
}

// UpdatePropertyAuditSchedules moves every overdue next_audit_date to now
// plus the audit interval in a single UPDATE.
func (s *MaintenanceService) UpdatePropertyAuditSchedules(ctx context.Context) (*models.ScheduleSweepResult, error) {
	now := s.clock()
	next := now.Add(AuditInterval)

	res := s.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("next_audit_date < ?", pkg.StartOfDay(now)).
		Update("next_audit_date", next)
	if res.Error != nil {
		return nil, errors.NewInternalServerError(res.Error, "Failed to update property audit schedules")
	}

	return &models.ScheduleSweepResult{
		UpdatedProperties: res.RowsAffected,
		NextAuditDate:     next,
	}, nil
}

// RunScheduledSweep runs the schedule sweep once across all replicas. It
// returns nil without doing anything when another replica holds the lock.
func (s *MaintenanceService) RunScheduledSweep(ctx context.Context) (*models.ScheduleSweepResult, error) {
	logger := infrastructures.GetLogger().WithField("job", "schedule-sweep")

	if s.locker == nil {
		logger.Warn("redis lock not configured; running sweep without lock")
		return s.UpdatePropertyAuditSchedules(ctx)
	}

	lock, err := s.locker.Obtain(ctx, scheduleSweepLockKey, scheduleSweepLockTTL, nil)
	if err == redislock.ErrNotObtained {
		logger.Info("sweep already running on another replica")
		return nil, nil
	} else if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to obtain sweep lock")
	}
	defer func() {
		_ = lock.Release(ctx)
	}()

	return s.UpdatePropertyAuditSchedules(ctx)
}

// StartScheduler runs the sweep every interval until ctx is done
func (s *MaintenanceService) StartScheduler(ctx context.Context, interval time.Duration) {
	logger := infrastructures.GetLogger().WithField("job", "schedule-sweep")

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			result, err := s.RunScheduledSweep(ctx)
			if err != nil {
				logger.WithError(err).Error("schedule sweep failed")
			} else if result != nil {
				logger.WithField("updated_properties", result.UpdatedProperties).Info("schedule sweep finished")
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
