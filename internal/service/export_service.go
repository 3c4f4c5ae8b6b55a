package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/studyplan-api/internal/models"
	appErrors "github.com/noah-isme/studyplan-api/pkg/errors"
	"github.com/noah-isme/studyplan-api/pkg/export"
)

type exportSink interface {
	Save(filename string, data []byte) (string, error)
}

// ExportService renders stored block plans as CSV or PDF downloads and
// keeps a copy under the data directory.
type ExportService struct {
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	sink   exportSink
	logger *zap.Logger
}

// ExportResult carries rendered bytes plus download metadata.
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// NewExportService wires the renderers and the on-disk sink.
func NewExportService(sink exportSink, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		sink:   sink,
		logger: logger,
	}
}

// RenderBlockPlan produces a downloadable document for the plan.
// Supported formats are "csv" (default) and "pdf".
func (s *ExportService) RenderBlockPlan(plan *models.BlockPlan, format string) (*ExportResult, error) {
	dataset := export.Dataset{
		Headers: []string{"start", "end", "course"},
		Rows:    make([][]string, 0, len(plan.Blocks)),
	}
	for _, block := range plan.Blocks {
		dataset.Rows = append(dataset.Rows, []string{
			block.Start.Format("15:04"),
			block.End.Format("15:04"),
			block.Course,
		})
	}

	var result ExportResult
	switch strings.ToLower(format) {
	case "", "csv":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		result = ExportResult{Data: data, ContentType: "text/csv", Filename: fmt.Sprintf("study_schedule_%s.csv", plan.ID)}
	case "pdf":
		data, err := s.pdf.Render(dataset, "Study schedule")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		result = ExportResult{Data: data, ContentType: "application/pdf", Filename: fmt.Sprintf("study_schedule_%s.pdf", plan.ID)}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	if s.sink != nil {
		if _, err := s.sink.Save("exports/"+result.Filename, result.Data); err != nil {
			s.logger.Sugar().Warnw("failed to persist export copy", "filename", result.Filename, "error", err)
		}
	}
	return &result, nil
}
