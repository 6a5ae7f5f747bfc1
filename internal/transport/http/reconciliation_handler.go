package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"hotel-reconciliation/internal/domain"
	"hotel-reconciliation/internal/gateway"
	"hotel-reconciliation/internal/observability"
	"hotel-reconciliation/internal/usecase"
)

// Multipart field names of the upload form.
const (
	FieldDailyTotals = "daily_totals"
	FieldStatistics  = "statistics"
	FieldCutoff      = "cutoff"
	FieldColumns     = "columns"
	FieldAll         = "all"
)

// Reconciler is the usecase consumed by the handler.
type Reconciler interface {
	Reconcile(ctx context.Context, in usecase.Input) (*domain.ReconciliationReport, error)
}

// ReconciliationHandler accepts the two exports as a multipart upload and
// responds with the reconciliation report.
type ReconciliationHandler struct {
	reconciler     Reconciler
	metrics        *observability.Metrics
	logger         *slog.Logger
	maxUploadBytes int64
	defaultView    usecase.ViewOptions
}

// NewReconciliationHandler creates a new reconciliation handler
func NewReconciliationHandler(reconciler Reconciler, metrics *observability.Metrics, logger *slog.Logger, maxUploadBytes int64, defaultView usecase.ViewOptions) *ReconciliationHandler {
	return &ReconciliationHandler{
		reconciler:     reconciler,
		metrics:        metrics,
		logger:         logger.With(slog.String("handler", "reconciliation")),
		maxUploadBytes: maxUploadBytes,
		defaultView:    defaultView,
	}
}

// Create handles POST /api/v1/reconciliations
func (h *ReconciliationHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			render.Render(w, r, newProblem(r, http.StatusRequestEntityTooLarge, TypePayloadTooLarge, "Upload Too Large", err.Error()))
			return
		}
		render.Render(w, r, newProblem(r, http.StatusBadRequest, TypeInvalidRequest, "Invalid Upload", err.Error()))
		return
	}
	defer r.MultipartForm.RemoveAll()

	view, cutoff, err := h.parseOptions(r)
	if err != nil {
		render.Render(w, r, newProblem(r, http.StatusBadRequest, TypeInvalidRequest, "Invalid Parameter", err.Error()))
		return
	}

	daily, dailyHeader, err := r.FormFile(FieldDailyTotals)
	if err != nil {
		render.Render(w, r, newProblem(r, http.StatusBadRequest, TypeInvalidRequest, "Missing File", fmt.Sprintf("%s: %v", FieldDailyTotals, err)))
		return
	}
	defer daily.Close()

	stats, _, err := r.FormFile(FieldStatistics)
	if err != nil {
		render.Render(w, r, newProblem(r, http.StatusBadRequest, TypeInvalidRequest, "Missing File", fmt.Sprintf("%s: %v", FieldStatistics, err)))
		return
	}
	defer stats.Close()

	report, err := h.reconciler.Reconcile(r.Context(), usecase.Input{
		DailyTotals:     daily,
		Statistics:      stats,
		DailyTotalsName: uploadName(dailyHeader),
		Cutoff:          cutoff,
		View:            view,
	})
	if err != nil {
		h.metrics.ObserveFailure(err)
		h.logger.ErrorContext(r.Context(), "reconciliation failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		if domain.IsInputError(err) {
			render.Render(w, r, newProblem(r, http.StatusUnprocessableEntity, TypeInvalidReport, "Invalid Report", err.Error()))
			return
		}
		render.Render(w, r, newProblem(r, http.StatusInternalServerError, TypeInternal, "Internal Server Error", "reconciliation could not be completed"))
		return
	}
	h.metrics.ObserveReport(report)

	if strings.Contains(r.Header.Get("Accept"), "text/csv") {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		if err := gateway.WriteCSV(w, report.Table); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to write csv", slog.String("error", err.Error()))
		}
		return
	}
	render.JSON(w, r, report)
}

// parseOptions reads the view settings and the cutoff from the form.
func (h *ReconciliationHandler) parseOptions(r *http.Request) (usecase.ViewOptions, time.Time, error) {
	view := h.defaultView

	cols, err := domain.ParseColumns(r.FormValue(FieldColumns))
	if err != nil {
		return view, time.Time{}, err
	}
	if cols != nil {
		view.Columns = cols
	}

	if v := r.FormValue(FieldAll); v != "" {
		all, err := strconv.ParseBool(v)
		if err != nil {
			return view, time.Time{}, fmt.Errorf("%s: %w", FieldAll, err)
		}
		view.DiscrepanciesOnly = !all
	}

	var cutoff time.Time
	if v := r.FormValue(FieldCutoff); v != "" {
		cutoff, err = time.Parse(time.DateOnly, v)
		if err != nil {
			return view, time.Time{}, fmt.Errorf("%s: expected YYYY-MM-DD: %w", FieldCutoff, err)
		}
	}
	return view, cutoff, nil
}

func uploadName(fh *multipart.FileHeader) string {
	if fh == nil {
		return ""
	}
	return fh.Filename
}
