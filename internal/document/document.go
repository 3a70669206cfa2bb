package document

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"langlens/internal/core/errors"
	"langlens/internal/lang"
	"langlens/internal/observability"
)

// Document is the boundary adapter: a text buffer plus optional filename and
// language metadata supplied by the caller. The core never reads files.
type Document struct {
	Path       string
	LanguageID string
	Text       string
}

// Position, Range and OutlineNode are the caller-facing structure shape.
type Position struct {
	Line int `json:"line"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type OutlineNode struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Range Range  `json:"range"`
}

// Service adapts documents to the per-handler primitives. Methods take a
// context for API uniformity with callers; the work itself is synchronous.
type Service struct {
	registry *lang.Registry
	logger   *slog.Logger
}

func NewService(registry *lang.Registry, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{registry: registry, logger: logger}
}

// handlerFor resolves by filename extension first, then by language id.
func (s *Service) handlerFor(doc Document) (lang.Handler, error) {
	if doc.Path != "" {
		if h, ok := s.registry.HandlerForFile(doc.Path); ok {
			return h, nil
		}
	}
	if doc.LanguageID != "" {
		if h, ok := s.registry.HandlerForLanguageID(doc.LanguageID); ok {
			return h, nil
		}
	}
	err := &errors.DomainError{Code: errors.CodeNotSupported, Message: "no handler for document"}
	err.WithContext(errors.CtxPath, doc.Path).WithContext(errors.CtxLanguage, doc.LanguageID)
	return nil, err
}

func (s *Service) Imports(ctx context.Context, doc Document) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, err := s.handlerFor(doc)
	if err != nil {
		return nil, err
	}
	return h.AnalyzeImports(doc.Text), nil
}

func (s *Service) Dependencies(ctx context.Context, doc Document) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, err := s.handlerFor(doc)
	if err != nil {
		return nil, err
	}
	return h.AnalyzeDependencies(doc.Text), nil
}

func (s *Service) FileStructure(ctx context.Context, doc Document) ([]OutlineNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, err := s.handlerFor(doc)
	if err != nil {
		return nil, err
	}
	structure := h.AnalyzeStructure(doc.Text)
	nodes := make([]OutlineNode, 0, len(structure))
	for _, n := range structure {
		nodes = append(nodes, OutlineNode{
			Type: string(n.Kind),
			Name: n.Name,
			Range: Range{
				Start: Position{Line: n.StartLine},
				End:   Position{Line: n.EndLine},
			},
		})
	}
	return nodes, nil
}

// Analyze runs the full per-file pass and aggregates the result.
func (s *Service) Analyze(ctx context.Context, doc Document) (lang.Analysis, error) {
	ctx, span := observability.Tracer.Start(ctx, "document.Analyze", trace.WithAttributes(
		attribute.String("document.path", doc.Path),
	))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return lang.Analysis{}, err
	}
	h, err := s.handlerFor(doc)
	if err != nil {
		return lang.Analysis{}, err
	}

	language := h.Descriptor().LanguageID
	start := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues(language).Observe(time.Since(start).Seconds())
	}()

	analysis := lang.Analysis{
		Imports:        h.AnalyzeImports(doc.Text),
		Dependencies:   h.AnalyzeDependencies(doc.Text),
		Structure:      h.AnalyzeStructure(doc.Text),
		SyntaxValid:    h.ValidateSyntax(doc.Text),
		ImportsValid:   h.ValidateImports(doc.Text),
		StructureValid: h.ValidateStructure(doc.Text),
	}
	if !analysis.SyntaxValid {
		observability.ParseFailures.WithLabelValues(language).Inc()
	}
	return analysis, nil
}

func (s *Service) Format(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h, err := s.handlerFor(doc)
	if err != nil {
		return "", err
	}
	return h.FormatCode(doc.Text), nil
}
