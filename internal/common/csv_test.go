package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolade082/ksavers/internal/models"
)

func TestWriteTransactionsToCSV(t *testing.T) {
	transactions := []models.Transaction{
		{
			Date:        time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC),
			Description: "STARBUCKS COFFEE",
			Amount:      decimal.NewFromFloat(-4.5),
			Type:        models.TypeDebit,
			Category:    "Food & Dining",
		},
		{
			Date:        time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
			Description: "Salary Deposit",
			Amount:      decimal.NewFromInt(2000),
			Type:        models.TypeCredit,
			Category:    "Other",
		},
	}

	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, WriteTransactionsToCSV(transactions, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Description,Amount,Type,Category", lines[0])
	assert.Equal(t, "2024-11-05,STARBUCKS COFFEE,-4.50,debit,Food & Dining", lines[1])
	assert.Equal(t, "2024-11-01,Salary Deposit,2000.00,credit,Other", lines[2])
}

func TestWriteTransactionsToCSVCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "ledger.csv")
	require.NoError(t, WriteTransactionsToCSV([]models.Transaction{}, path))
	assert.FileExists(t, path)
}

func TestWriteTransactionsToCSVNilInput(t *testing.T) {
	assert.Error(t, WriteTransactionsToCSV(nil, filepath.Join(t.TempDir(), "ledger.csv")))
}
