// Package extractor turns raw statement content into transactions. It
// supports three sources: the fixed statement line patterns, the remote
// extraction service, and a synthetic fallback generator.
package extractor

import (
	"regexp"
	"strings"

	"github.com/kolade082/ksavers/internal/logging"
	"github.com/kolade082/ksavers/internal/models"
)

// linePattern binds one statement line regex to the transaction it yields.
// Group 1 is the date, group 2 the amount.
type linePattern struct {
	re          *regexp.Regexp
	description string
	txType      models.TransactionType
}

// The statement's text extraction concatenates columns without separators,
// so dates butt directly against the detail text.
var linePatterns = []linePattern{
	{
		re:          regexp.MustCompile(`(\d{1,2}\s+[A-Za-z]+\s+\d{4})Opening balance(£[\d,]+\.?\d*)`),
		description: "Opening Balance",
		txType:      models.TypeCredit,
	},
	{
		re:          regexp.MustCompile(`(\d{1,2}\s+[A-Za-z]+\s+\d{4})Interest earned\s+Interest\s+([+-]?£[\d,]+\.?\d*)`),
		description: "Interest Earned",
		txType:      models.TypeCredit,
	},
	{
		re:          regexp.MustCompile(`(\d{1,2}\s+[A-Za-z]+\s+\d{4})To [A-Za-z ]+'s Account\s+Transfer\s+([+-]?£[\d,]+\.?\d*)`),
		description: "Transfer Out",
		txType:      models.TypeDebit,
	},
	{
		re:          regexp.MustCompile(`(\d{1,2}\s+[A-Za-z]+\s+\d{4})Closing balance(£[\d,]+\.?\d*)`),
		description: "Closing Balance",
		txType:      models.TypeCredit,
	},
}

// isHeaderLine reports whether a line is a column header rather than data.
func isHeaderLine(line string) bool {
	lowered := strings.ToLower(line)
	return strings.Contains(lowered, "date") || strings.Contains(lowered, "transaction details")
}

// ExtractLines matches raw statement lines against the fixed pattern set and
// returns the transactions found, in input order. Empty and header lines are
// skipped before matching; lines matching no pattern contribute nothing; a
// matched line whose date or amount cannot be parsed is skipped rather than
// failing the extraction.
func ExtractLines(lines []string, logger logging.Logger) []models.Transaction {
	if logger == nil {
		logger = logging.GetLogger()
	}

	transactions := make([]models.Transaction, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" || isHeaderLine(line) {
			continue
		}

		for _, pattern := range linePatterns {
			match := pattern.re.FindStringSubmatch(line)
			if match == nil {
				continue
			}

			date, err := models.ParseStatementDate(match[1])
			if err != nil {
				logger.WithError(err).WithField("line", line).Warn("Skipping line with unparseable date")
				break
			}

			amount := models.ParseAmount(match[2])
			if amount.IsZero() && !strings.ContainsAny(match[2], "0123456789") {
				logger.WithField("line", line).Warn("Skipping line with unparseable amount")
				break
			}

			transactions = append(transactions, models.Transaction{
				Date:        date,
				Description: pattern.description,
				Amount:      amount,
				Type:        pattern.txType,
			})
			break
		}
	}

	logger.WithField("count", len(transactions)).Debug("Extracted transactions from statement lines")
	return transactions
}
