package gateway

import "log/slog"

// FileReportRepository implements the ReportRepository interface for the
// Daily Totals text export and the Statistics spreadsheet export.
type FileReportRepository struct {
	logger *slog.Logger
}

// NewFileReportRepository creates a new repository instance.
func NewFileReportRepository(logger *slog.Logger) *FileReportRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileReportRepository{logger: logger.With(slog.String("component", "gateway"))}
}
