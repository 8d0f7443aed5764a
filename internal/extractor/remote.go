package extractor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kolade082/ksavers/internal/logging"
	"github.com/kolade082/ksavers/internal/models"
	"github.com/kolade082/ksavers/internal/parsererror"
)

// Client talks to the remote statement extraction service. The service
// receives the statement as base64 text and answers with already-parsed
// transaction tuples; the client's job is validation and normalization.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient creates a Client for the given endpoint.
func NewClient(endpoint string, timeout time.Duration, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type extractRequest struct {
	PDFData string `json:"pdfData"`
}

type extractResponse struct {
	Transactions []remoteTransaction `json:"transactions"`
}

// remoteTransaction is the wire shape of one extracted tuple.
type remoteTransaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
}

// Extract sends statement content to the extraction service and returns the
// normalized transactions. Tuples with an unparseable date or unknown type
// are skipped, not fatal. All failures come back as *parsererror.ExtractionError.
func (c *Client) Extract(ctx context.Context, content []byte) ([]models.Transaction, error) {
	payload, err := json.Marshal(extractRequest{
		PDFData: base64.StdEncoding.EncodeToString(content),
	})
	if err != nil {
		return nil, &parsererror.ExtractionError{Source: "remote", Reason: "encoding request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &parsererror.ExtractionError{Source: "remote", Reason: "building request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.WithField("endpoint", c.endpoint).Debug("Sending statement to extraction service")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &parsererror.ExtractionError{Source: "remote", Reason: "service unreachable", Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &parsererror.ExtractionError{
			Source: "remote",
			Reason: fmt.Sprintf("service returned status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var decoded extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &parsererror.ExtractionError{Source: "remote", Reason: "decoding response", Err: err}
	}

	transactions := make([]models.Transaction, 0, len(decoded.Transactions))
	for _, tuple := range decoded.Transactions {
		tx, err := normalizeTuple(tuple)
		if err != nil {
			c.logger.WithError(err).WithField("description", tuple.Description).
				Warn("Skipping invalid transaction tuple")
			continue
		}
		transactions = append(transactions, tx)
	}

	c.logger.WithField("count", len(transactions)).Info("Received transactions from extraction service")
	return transactions, nil
}

// normalizeTuple converts one wire tuple to the canonical transaction form.
func normalizeTuple(tuple remoteTransaction) (models.Transaction, error) {
	date, err := models.ParseStatementDate(tuple.Date)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("unparseable date %q: %w", tuple.Date, err)
	}

	txType := models.TransactionType(tuple.Type)
	if txType != models.TypeDebit && txType != models.TypeCredit {
		return models.Transaction{}, fmt.Errorf("unknown transaction type %q", tuple.Type)
	}

	return models.Transaction{
		Date:        date,
		Description: tuple.Description,
		Amount:      decimal.NewFromFloat(tuple.Amount),
		Type:        txType,
	}, nil
}
