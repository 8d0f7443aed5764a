// Package analyzer sequences the analysis pipeline: extraction,
// categorization, aggregation and insight generation.
package analyzer

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/kolade082/ksavers/internal/aggregator"
	"github.com/kolade082/ksavers/internal/categorizer"
	"github.com/kolade082/ksavers/internal/extractor"
	"github.com/kolade082/ksavers/internal/insights"
	"github.com/kolade082/ksavers/internal/logging"
	"github.com/kolade082/ksavers/internal/models"
	"github.com/kolade082/ksavers/internal/parsererror"
)

// Fallback windows per input mode, in days. PDF statements get the long
// window, CSV input the short one.
const (
	pdfFallbackDays = 90
	csvFallbackDays = 30
)

// RemoteExtractor extracts transactions from raw statement content via the
// external parsing service.
type RemoteExtractor interface {
	Extract(ctx context.Context, content []byte) ([]models.Transaction, error)
}

// Options configures an Analyzer. Nil collaborators get working defaults,
// except Remote, which stays nil and forces the fallback path.
type Options struct {
	Remote          RemoteExtractor
	Generator       *extractor.Generator
	Categorizer     *categorizer.Categorizer
	Aggregator      *aggregator.Aggregator
	Engine          *insights.Engine
	FallbackEnabled bool
	Logger          logging.Logger
}

// Analyzer orchestrates one statement analysis per call. It holds no
// cross-call state: every run builds fresh slices, so concurrent analyses
// are independent.
type Analyzer struct {
	remote          RemoteExtractor
	generator       *extractor.Generator
	categorizer     *categorizer.Categorizer
	aggregator      *aggregator.Aggregator
	engine          *insights.Engine
	fallbackEnabled bool
	logger          logging.Logger
}

// New creates an Analyzer from the given options.
func New(opts Options) *Analyzer {
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}
	gen := opts.Generator
	if gen == nil {
		gen = extractor.NewGenerator(nil, time.Time{}, logger)
	}
	cat := opts.Categorizer
	if cat == nil {
		cat = categorizer.New(nil, logger)
	}
	agg := opts.Aggregator
	if agg == nil {
		agg = aggregator.New(logger)
	}
	eng := opts.Engine
	if eng == nil {
		eng = insights.New(logger)
	}
	return &Analyzer{
		remote:          opts.Remote,
		generator:       gen,
		categorizer:     cat,
		aggregator:      agg,
		engine:          eng,
		fallbackEnabled: opts.FallbackEnabled,
		logger:          logger,
	}
}

// Analyze runs the full pipeline over one statement file. The extension
// selects the extraction mode: PDF content goes to the remote service with
// the synthetic generator as the single fallback attempt; plain-text
// statements are matched against the fixed line patterns locally; CSV input
// is served synthetic data directly. Anything unrecovered surfaces as a
// single *parsererror.AnalysisError with no partial result.
func (a *Analyzer) Analyze(ctx context.Context, path string, content []byte) (*models.AnalysisResult, error) {
	if path == "" {
		return nil, &parsererror.AnalysisError{
			Stage: "input",
			Err:   &parsererror.ExtractionError{Source: "input", Reason: "no input provided"},
		}
	}

	transactions, err := a.extract(ctx, path, content)
	if err != nil {
		return nil, &parsererror.AnalysisError{Stage: "extraction", Err: err}
	}

	return a.AnalyzeTransactions(transactions), nil
}

// extract selects remote vs fallback extraction. Exactly one fallback
// attempt is made; a cancelled remote call falls back rather than
// propagating the cancellation.
func (a *Analyzer) extract(ctx context.Context, path string, content []byte) ([]models.Transaction, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return a.extractPDF(ctx, content)
	case ".txt":
		return extractor.ExtractLines(strings.Split(string(content), "\n"), a.logger), nil
	case ".csv":
		return a.generator.Generate(csvFallbackDays), nil
	default:
		return nil, &parsererror.ExtractionError{
			Source: "input",
			Reason: "unsupported file type: " + filepath.Ext(path),
		}
	}
}

func (a *Analyzer) extractPDF(ctx context.Context, content []byte) ([]models.Transaction, error) {
	if a.remote != nil {
		transactions, err := a.remote.Extract(ctx, content)
		if err == nil && len(transactions) > 0 {
			return transactions, nil
		}
		if err != nil {
			if !a.fallbackEnabled {
				return nil, err
			}
			a.logger.WithError(err).Warn("Remote extraction failed, falling back to synthetic data")
		} else if !a.fallbackEnabled {
			// Zero transactions is a valid, empty statement when the
			// fallback is off.
			return transactions, nil
		} else {
			a.logger.Warn("Remote extraction returned no transactions, falling back to synthetic data")
		}
	} else if !a.fallbackEnabled {
		return nil, &parsererror.ExtractionError{
			Source: "remote",
			Reason: "no extraction service configured and fallback disabled",
		}
	}

	return a.generator.Generate(pdfFallbackDays), nil
}

// AnalyzeTransactions runs the downstream pipeline over already-extracted
// transactions. Categorization, aggregation and insight generation are total
// functions, so this never fails.
func (a *Analyzer) AnalyzeTransactions(transactions []models.Transaction) *models.AnalysisResult {
	categorized := a.categorizer.Apply(transactions)
	summary := a.aggregator.Aggregate(categorized)

	generated := a.engine.Generate(insights.Input{
		Transactions:  categorized,
		Categories:    summary.Categories,
		TotalSpending: summary.TotalSpending,
		TotalIncome:   summary.TotalIncome,
	})

	result := &models.AnalysisResult{
		TotalSpending: summary.TotalSpending,
		TotalIncome:   summary.TotalIncome,
		NetChange:     summary.TotalIncome.Sub(summary.TotalSpending),
		Categories:    summary.Categories,
		Insights:      generated,
		Period:        aggregator.PeriodOf(categorized),
		Transactions:  categorized,
	}

	a.logger.WithFields(
		logging.Field{Key: "transactions", Value: len(categorized)},
		logging.Field{Key: "categories", Value: len(summary.Categories)},
		logging.Field{Key: "insights", Value: len(generated)},
	).Info("Analysis complete")

	return result
}
