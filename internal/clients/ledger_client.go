package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type ledgerHTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewLedgerClient creates a LedgerClient for the ledger service at baseURL,
// authenticating with the given service token.
func NewLedgerClient(baseURL, token string) LedgerClient {
	return &ledgerHTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *ledgerHTTPClient) Record(ctx context.Context, transactionID, actionType, details string) error {
	payload, err := json.Marshal(map[string]string{
		"transaction_id": transactionID,
		"action_type":    actionType,
		"details":        details,
	})
	if err != nil {
		return fmt.Errorf("marshaling ledger request: %w", err)
	}

	url := c.baseURL + "/api/v1/transactions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building ledger request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling ledger service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		return nil
	case http.StatusConflict:
		return fmt.Errorf("%w: transaction '%s'", ErrRemoteConflict, transactionID)
	default:
		return fmt.Errorf("ledger service returned status %d for transaction '%s'", resp.StatusCode, transactionID)
	}
}
