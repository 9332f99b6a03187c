package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"xero_backend/internal/models"
)

type inventoryHTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewInventoryClient creates an InventoryClient for the inventory service at
// baseURL, authenticating with the given service token.
func NewInventoryClient(baseURL, token string) InventoryClient {
	return &inventoryHTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *inventoryHTTPClient) GetItem(ctx context.Context, itemID string) (*models.InventoryItem, error) {
	url := fmt.Sprintf("%s/api/v1/items/%s", c.baseURL, itemID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building inventory request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling inventory service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: item '%s'", ErrRemoteNotFound, itemID)
	default:
		return nil, fmt.Errorf("inventory service returned status %d for item '%s'", resp.StatusCode, itemID)
	}

	var item models.InventoryItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("decoding inventory response: %w", err)
	}
	return &item, nil
}
