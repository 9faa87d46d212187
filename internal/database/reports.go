package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go-restaurant-pos/internal/models"
	"go-restaurant-pos/internal/store"

	"gorm.io/gorm"
)

// ReportArchive stores every generated report as one saved_reports row.
type ReportArchive struct {
	db *gorm.DB
	mu sync.Mutex // One writer at a time
}

func NewReportArchive(db *gorm.DB) *ReportArchive {
	return &ReportArchive{db: db}
}

// Append inserts a single row, so a failed write never touches earlier reports.
func (a *ReportArchive) Append(ctx context.Context, report models.Report) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	report.Seq = 0 // Assigned by the database
	if err := a.db.WithContext(ctx).Create(&report).Error; err != nil {
		return fmt.Errorf("archive report %s: %w: %v", report.ID, store.ErrStorageFailure, err)
	}
	return nil
}

// List returns the archive in generation order.
func (a *ReportArchive) List(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := a.db.WithContext(ctx).Order("seq asc").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("list reports: %w: %v", store.ErrStorageFailure, err)
	}
	return reports, nil
}

func (a *ReportArchive) Find(ctx context.Context, id string) (models.Report, error) {
	var report models.Report
	err := a.db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Report{}, fmt.Errorf("report %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return models.Report{}, fmt.Errorf("find report %s: %w: %v", id, store.ErrStorageFailure, err)
	}
	return report, nil
}
