package service

import (
	"context"
	"fmt"
	"time"

	"go-restaurant-pos/internal/models"
	"go-restaurant-pos/internal/reports"
	"go-restaurant-pos/internal/store"

	"github.com/rs/zerolog/log"
)

type ReportService struct {
	orders     store.OrderStore
	archive    store.ReportArchive
	aggregator *reports.Aggregator
}

func NewReportService(orders store.OrderStore, archive store.ReportArchive, aggregator *reports.Aggregator) *ReportService {
	return &ReportService{orders: orders, archive: archive, aggregator: aggregator}
}

// Generate builds the report for rawDate (today when empty or unparseable) and archives it.
// When only the archive write fails, the report is returned together with the error.
func (s *ReportService) Generate(ctx context.Context, rawDate string) (models.Report, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return models.Report{}, err
	}

	selected, fallback := reports.ResolveSelectedDate(rawDate, s.aggregator.Now(), s.aggregator.Location)
	if fallback && rawDate != "" {
		log.Warn().Str("date", rawDate).Msg("reports: unparseable date, using today")
	}

	start := time.Now()
	report := s.aggregator.Generate(orders, selected)
	log.Info().
		Str("report_id", report.ID).
		Str("selected_date", report.SelectedDate).
		Int("orders", report.TotalOrders).
		Int("days", len(report.DailyBuckets)).
		Dur("took", time.Since(start)).
		Msg("reports: generated")

	if err := s.archive.Append(ctx, report); err != nil {
		log.Error().Err(err).Str("report_id", report.ID).Msg("reports: archive append failed")
		return report, fmt.Errorf("report %s generated but not archived: %w", report.ID, err)
	}

	return report, nil
}

// History lists archived reports in generation order.
func (s *ReportService) History(ctx context.Context) ([]models.Report, error) {
	return s.archive.List(ctx)
}

func (s *ReportService) Find(ctx context.Context, id string) (models.Report, error) {
	return s.archive.Find(ctx, id)
}
