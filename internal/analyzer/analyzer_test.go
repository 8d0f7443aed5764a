package analyzer

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolade082/ksavers/internal/extractor"
	"github.com/kolade082/ksavers/internal/logging"
	"github.com/kolade082/ksavers/internal/models"
	"github.com/kolade082/ksavers/internal/parsererror"
)

// stubRemote implements RemoteExtractor with canned output.
type stubRemote struct {
	transactions []models.Transaction
	err          error
	calls        int
}

func (s *stubRemote) Extract(ctx context.Context, content []byte) ([]models.Transaction, error) {
	s.calls++
	return s.transactions, s.err
}

func statementTransactions() []models.Transaction {
	return []models.Transaction{
		{
			Date:        time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
			Description: "Salary Deposit",
			Amount:      decimal.NewFromInt(2000),
			Type:        models.TypeCredit,
		},
		{
			Date:        time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC),
			Description: "STARBUCKS COFFEE",
			Amount:      decimal.NewFromInt(-5),
			Type:        models.TypeDebit,
		},
		{
			Date:        time.Date(2024, 11, 12, 0, 0, 0, 0, time.UTC),
			Description: "Uber Trip",
			Amount:      decimal.NewFromInt(-20),
			Type:        models.TypeDebit,
		},
	}
}

func testGenerator() *extractor.Generator {
	now := time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC)
	return extractor.NewGenerator(rand.New(rand.NewSource(42)), now, &logging.MockLogger{})
}

func TestAnalyzeRemoteSuccess(t *testing.T) {
	remote := &stubRemote{transactions: statementTransactions()}
	a := New(Options{
		Remote:          remote,
		Generator:       testGenerator(),
		FallbackEnabled: true,
		Logger:          &logging.MockLogger{},
	})

	result, err := a.Analyze(context.Background(), "statement.pdf", []byte("content"))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, remote.calls)

	assert.True(t, result.TotalSpending.Equal(decimal.NewFromInt(25)))
	assert.True(t, result.TotalIncome.Equal(decimal.NewFromInt(2000)))
	assert.True(t, result.NetChange.Equal(decimal.NewFromInt(1975)))

	require.Len(t, result.Transactions, 3)
	assert.Equal(t, "Other", result.Transactions[0].Category)
	assert.Equal(t, "Food & Dining", result.Transactions[1].Category)
	assert.Equal(t, "Transportation", result.Transactions[2].Category)

	assert.Equal(t, "2024-11-01T00:00:00Z", result.Period.Start)
	assert.Equal(t, "2024-11-12T00:00:00Z", result.Period.End)
}

func TestAnalyzeRemoteErrorFallsBack(t *testing.T) {
	remote := &stubRemote{err: &parsererror.ExtractionError{Source: "remote", Reason: "service unreachable"}}
	a := New(Options{
		Remote:          remote,
		Generator:       testGenerator(),
		FallbackEnabled: true,
		Logger:          &logging.MockLogger{},
	})

	result, err := a.Analyze(context.Background(), "statement.pdf", []byte("content"))
	require.NoError(t, err)
	assert.Equal(t, 1, remote.calls)
	assert.NotEmpty(t, result.Transactions)
	assert.True(t, result.TotalSpending.IsPositive())
}

func TestAnalyzeRemoteEmptyFallsBack(t *testing.T) {
	remote := &stubRemote{transactions: []models.Transaction{}}
	a := New(Options{
		Remote:          remote,
		Generator:       testGenerator(),
		FallbackEnabled: true,
		Logger:          &logging.MockLogger{},
	})

	result, err := a.Analyze(context.Background(), "statement.pdf", []byte("content"))
	require.NoError(t, err)
	assert.NotEmpty(t, result.Transactions)
}

func TestAnalyzeRemoteEmptyFallbackDisabled(t *testing.T) {
	remote := &stubRemote{transactions: []models.Transaction{}}
	a := New(Options{
		Remote: remote,
		Logger: &logging.MockLogger{},
	})

	result, err := a.Analyze(context.Background(), "statement.pdf", []byte("content"))
	require.NoError(t, err)
	assert.Empty(t, result.Transactions)
	assert.Empty(t, result.Categories)
	assert.Empty(t, result.Insights)
	assert.Empty(t, result.Period.Start)
	assert.Empty(t, result.Period.End)
	assert.True(t, result.TotalSpending.IsZero())
}

func TestAnalyzeRemoteErrorFallbackDisabled(t *testing.T) {
	remote := &stubRemote{err: &parsererror.ExtractionError{Source: "remote", Reason: "service unreachable"}}
	a := New(Options{
		Remote: remote,
		Logger: &logging.MockLogger{},
	})

	_, err := a.Analyze(context.Background(), "statement.pdf", []byte("content"))
	require.Error(t, err)

	var analysisErr *parsererror.AnalysisError
	require.True(t, errors.As(err, &analysisErr))
	assert.Equal(t, "extraction", analysisErr.Stage)

	var extractErr *parsererror.ExtractionError
	assert.True(t, errors.As(err, &extractErr))
}

func TestAnalyzeNoRemoteNoFallback(t *testing.T) {
	a := New(Options{Logger: &logging.MockLogger{}})

	_, err := a.Analyze(context.Background(), "statement.pdf", []byte("content"))
	require.Error(t, err)

	var analysisErr *parsererror.AnalysisError
	require.True(t, errors.As(err, &analysisErr))
	assert.Equal(t, "extraction", analysisErr.Stage)
}

func TestAnalyzeNoRemoteFallbackEnabled(t *testing.T) {
	a := New(Options{
		Generator:       testGenerator(),
		FallbackEnabled: true,
		Logger:          &logging.MockLogger{},
	})

	result, err := a.Analyze(context.Background(), "statement.pdf", []byte("content"))
	require.NoError(t, err)
	assert.NotEmpty(t, result.Transactions)
}

func TestAnalyzeTextStatement(t *testing.T) {
	remote := &stubRemote{}
	a := New(Options{
		Remote: remote,
		Logger: &logging.MockLogger{},
	})

	content := []byte("Date Transaction details Amount\n" +
		"01 Nov 2024Opening balance£1,000.00\n" +
		"12 Nov 2024To Kolade's Account Transfer -£500.00\n")

	result, err := a.Analyze(context.Background(), "statement.txt", content)
	require.NoError(t, err)
	assert.Zero(t, remote.calls)

	require.Len(t, result.Transactions, 2)
	assert.Equal(t, "Opening Balance", result.Transactions[0].Description)
	assert.Equal(t, "Transfer Out", result.Transactions[1].Description)
	assert.True(t, result.TotalSpending.Equal(decimal.NewFromInt(500)))
	assert.True(t, result.TotalIncome.Equal(decimal.NewFromInt(1000)))
}

func TestAnalyzeTextStatementNoMatches(t *testing.T) {
	a := New(Options{Logger: &logging.MockLogger{}})

	result, err := a.Analyze(context.Background(), "notes.txt", []byte("nothing here\n"))
	require.NoError(t, err)
	assert.Empty(t, result.Transactions)
	assert.Empty(t, result.Insights)
}

func TestAnalyzeCSVUsesSyntheticData(t *testing.T) {
	remote := &stubRemote{}
	a := New(Options{
		Remote:          remote,
		Generator:       testGenerator(),
		FallbackEnabled: true,
		Logger:          &logging.MockLogger{},
	})

	result, err := a.Analyze(context.Background(), "export.csv", []byte("a,b,c"))
	require.NoError(t, err)
	assert.Zero(t, remote.calls)
	assert.NotEmpty(t, result.Transactions)
}

func TestAnalyzeEmptyPath(t *testing.T) {
	a := New(Options{Logger: &logging.MockLogger{}})

	_, err := a.Analyze(context.Background(), "", nil)
	require.Error(t, err)

	var analysisErr *parsererror.AnalysisError
	require.True(t, errors.As(err, &analysisErr))
	assert.Equal(t, "input", analysisErr.Stage)
}

func TestAnalyzeUnsupportedExtension(t *testing.T) {
	a := New(Options{
		Generator:       testGenerator(),
		FallbackEnabled: true,
		Logger:          &logging.MockLogger{},
	})

	_, err := a.Analyze(context.Background(), "statement.docx", []byte("content"))
	require.Error(t, err)

	var extractErr *parsererror.ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Contains(t, extractErr.Reason, "unsupported file type")
}

func TestAnalyzeExtensionCaseInsensitive(t *testing.T) {
	remote := &stubRemote{transactions: statementTransactions()}
	a := New(Options{
		Remote: remote,
		Logger: &logging.MockLogger{},
	})

	_, err := a.Analyze(context.Background(), "STATEMENT.PDF", []byte("content"))
	require.NoError(t, err)
	assert.Equal(t, 1, remote.calls)
}

func TestAnalyzeCancelledRemoteFallsBack(t *testing.T) {
	remote := &stubRemote{err: &parsererror.ExtractionError{Source: "remote", Reason: "service unreachable", Err: context.Canceled}}
	a := New(Options{
		Remote:          remote,
		Generator:       testGenerator(),
		FallbackEnabled: true,
		Logger:          &logging.MockLogger{},
	})

	result, err := a.Analyze(context.Background(), "statement.pdf", []byte("content"))
	require.NoError(t, err)
	assert.NotEmpty(t, result.Transactions)
}

func TestAnalyzeTransactionsEmpty(t *testing.T) {
	a := New(Options{Logger: &logging.MockLogger{}})

	result := a.AnalyzeTransactions(nil)
	require.NotNil(t, result)
	assert.Empty(t, result.Transactions)
	assert.Empty(t, result.Categories)
	assert.Empty(t, result.Insights)
	assert.True(t, result.TotalSpending.IsZero())
	assert.True(t, result.TotalIncome.IsZero())
	assert.True(t, result.NetChange.IsZero())
	assert.Empty(t, result.Period.Start)
	assert.Empty(t, result.Period.End)
}

func TestAnalyzeTransactionsInsights(t *testing.T) {
	a := New(Options{Logger: &logging.MockLogger{}})

	transactions := []models.Transaction{
		{
			Date:        time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
			Description: "Salary Deposit",
			Amount:      decimal.NewFromInt(1000),
			Type:        models.TypeCredit,
		},
		{
			Date:        time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC),
			Description: "Laptop Purchase",
			Amount:      decimal.NewFromInt(-600),
			Type:        models.TypeDebit,
		},
	}

	result := a.AnalyzeTransactions(transactions)
	require.Len(t, result.Insights, 2)
	assert.Equal(t, "Large Purchases Detected", result.Insights[0].Title)
	assert.Equal(t, "Excellent Savings Rate", result.Insights[1].Title)
}
