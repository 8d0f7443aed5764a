// Package common provides shared output functionality for the CLI commands.
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/kolade082/ksavers/internal/logging"
	"github.com/kolade082/ksavers/internal/models"
)

// transactionRow is the CSV projection of a transaction.
type transactionRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Type        string `csv:"Type"`
	Category    string `csv:"Category"`
}

// WriteTransactionsToCSV writes the categorized ledger to a CSV file.
// Amounts keep two decimal places; dates are ISO.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log := logging.GetLogger()
	log.WithFields(
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(transactions)},
	).Info("Writing transactions to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- caller-supplied output path
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close CSV file")
		}
	}()

	rows := make([]transactionRow, len(transactions))
	for i, tx := range transactions {
		rows[i] = transactionRow{
			Date:        tx.Date.Format(time.DateOnly),
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			Type:        string(tx.Type),
			Category:    tx.Category,
		}
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}

	return nil
}
