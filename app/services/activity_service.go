package services

import (
	"fmt"

	"SalesDashboard/app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultActivityLimit is the page size of GetRecentActivity when none is given
const DefaultActivityLimit = 50

// ActivityService journals every outcome to the activity database
type ActivityService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewActivityService creates a new activity service
func NewActivityService(db *gorm.DB, log *zap.Logger) *ActivityService {
	return &ActivityService{db: db, log: log.Named("activity")}
}

// Notify writes the outcome to the journal. Failures are logged, never returned,
// so a broken journal cannot block dashboard operations.
func (s *ActivityService) Notify(o Outcome) {
	if s.db == nil {
		return
	}
	entry := models.ActivityLog{
		Type:     string(o.Type),
		Entity:   o.Entity,
		EntityID: o.EntityID,
		Action:   o.Action,
		Field:    o.Field,
		Message:  o.Message,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Warn("Failed to journal activity", zap.Error(err), zap.String("message", o.Message))
	}
}

// GetRecentActivity returns the newest journal entries first, optionally for one entity
func (s *ActivityService) GetRecentActivity(entity string, limit int) ([]models.ActivityLog, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	query := s.db.Order("created_at DESC").Order("id DESC").Limit(limit)
	if entity != "" {
		query = query.Where("entity = ?", entity)
	}

	var entries []models.ActivityLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	return entries, nil
}

// CountActivity returns how many entries of the given type were journaled; an
// empty type counts everything
func (s *ActivityService) CountActivity(outcomeType OutcomeType) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not initialized")
	}
	query := s.db.Model(&models.ActivityLog{})
	if outcomeType != "" {
		query = query.Where("type = ?", string(outcomeType))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count activity: %w", err)
	}
	return count, nil
}
