package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/formsync/formsync-api/pkg/errors"
	"github.com/formsync/formsync-api/pkg/httpclient"
	"github.com/formsync/formsync-api/pkg/logger"
	"github.com/formsync/formsync-api/pkg/metrics"
	"go.uber.org/zap"
)

// DefaultEndpoint is the Monday.com GraphQL API endpoint
const DefaultEndpoint = "https://api.monday.com/v2"

// API defines the Monday.com operations the application depends on.
// Each call is independently failable; callers decide what a failure means.
type API interface {
	CreateItem(ctx context.Context, boardID, itemName string) (string, error)
	UpdateItemColumn(ctx context.Context, boardID, itemID, columnID, value string) error
	GetItemColumnValues(ctx context.Context, itemID string, columnIDs []string) (map[string]string, error)
}

// Client is a thin GraphQL-over-HTTP client for the Monday.com API
type Client struct {
	endpoint   string
	apiToken   string
	httpClient httpclient.Client
}

// NewClient creates a new Monday.com client
func NewClient(apiToken, endpoint string, httpClient httpclient.Client) (*Client, error) {
	if apiToken == "" {
		return nil, fmt.Errorf("empty API token provided")
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = httpclient.NewStandardClient()
	}

	logger.Info("Monday.com client initialized", zap.String("endpoint", endpoint))

	return &Client{
		endpoint:   endpoint,
		apiToken:   apiToken,
		httpClient: httpClient,
	}, nil
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// CreateItem creates one new item on the given board and returns its id
func (c *Client) CreateItem(ctx context.Context, boardID, itemName string) (string, error) {
	boardNum, err := strconv.ParseInt(boardID, 10, 64)
	if err != nil {
		return "", apperrors.RemoteCallError("createItem", fmt.Errorf("invalid board id %q: %w", boardID, err))
	}

	const query = `mutation ($boardId: ID!, $itemName: String!) {
		create_item (board_id: $boardId, item_name: $itemName) { id }
	}`

	data, err := c.execute(ctx, "createItem", query, map[string]interface{}{
		"boardId":  boardNum,
		"itemName": itemName,
	})
	if err != nil {
		return "", err
	}

	var result struct {
		CreateItem struct {
			ID string `json:"id"`
		} `json:"create_item"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", apperrors.RemoteCallError("createItem", err)
	}
	if result.CreateItem.ID == "" {
		return "", apperrors.RemoteCallError("createItem", fmt.Errorf("no item id in response"))
	}

	logger.Info("Created Monday.com item",
		zap.String("board_id", boardID),
		zap.String("item_id", result.CreateItem.ID),
		zap.String("item_name", itemName))

	return result.CreateItem.ID, nil
}

// UpdateItemColumn sets a single column of an item to a plain text value
func (c *Client) UpdateItemColumn(ctx context.Context, boardID, itemID, columnID, value string) error {
	boardNum, err := strconv.ParseInt(boardID, 10, 64)
	if err != nil {
		return apperrors.RemoteCallError("updateItemColumn", fmt.Errorf("invalid board id %q: %w", boardID, err))
	}
	itemNum, err := strconv.ParseInt(itemID, 10, 64)
	if err != nil {
		return apperrors.RemoteCallError("updateItemColumn", fmt.Errorf("invalid item id %q: %w", itemID, err))
	}

	const query = `mutation ($boardId: ID!, $itemId: ID!, $columnId: String!, $value: String!) {
		change_simple_column_value (board_id: $boardId, item_id: $itemId, column_id: $columnId, value: $value) { id }
	}`

	_, err = c.execute(ctx, "updateItemColumn", query, map[string]interface{}{
		"boardId":  boardNum,
		"itemId":   itemNum,
		"columnId": columnID,
		"value":    value,
	})
	return err
}

// GetItemColumnValues reads the display text of the given columns of one item.
// Columns the item does not have are absent from the result, not errors.
func (c *Client) GetItemColumnValues(ctx context.Context, itemID string, columnIDs []string) (map[string]string, error) {
	itemNum, err := strconv.ParseInt(itemID, 10, 64)
	if err != nil {
		return nil, apperrors.RemoteCallError("getItemColumnValues", fmt.Errorf("invalid item id %q: %w", itemID, err))
	}

	const query = `query ($itemId: [ID!], $columnIds: [String!]) {
		items (ids: $itemId) {
			name
			column_values (ids: $columnIds) { id text }
		}
	}`

	data, err := c.execute(ctx, "getItemColumnValues", query, map[string]interface{}{
		"itemId":    []int64{itemNum},
		"columnIds": columnIDs,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		Items []struct {
			Name         string `json:"name"`
			ColumnValues []struct {
				ID   string `json:"id"`
				Text string `json:"text"`
			} `json:"column_values"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, apperrors.RemoteCallError("getItemColumnValues", err)
	}
	if len(result.Items) == 0 {
		return nil, apperrors.RemoteCallError("getItemColumnValues", fmt.Errorf("item %s not found", itemID))
	}

	values := make(map[string]string, len(result.Items[0].ColumnValues))
	for _, cv := range result.Items[0].ColumnValues {
		values[cv.ID] = cv.Text
	}
	return values, nil
}

// execute posts a GraphQL request and returns the raw data payload
func (c *Client) execute(ctx context.Context, operation, query string, variables map[string]interface{}) (json.RawMessage, error) {
	start := time.Now()

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, apperrors.RemoteCallError(operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.RemoteCallError(operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordMetrics(operation, "error", start)
		return nil, apperrors.RemoteCallError(operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordMetrics(operation, "error", start)
		return nil, apperrors.RemoteCallError(operation, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.recordMetrics(operation, "error", start)
		return nil, apperrors.RemoteCallError(operation, fmt.Errorf("status %d: %s", resp.StatusCode, respBody))
	}

	var gqlResp graphqlResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		c.recordMetrics(operation, "error", start)
		return nil, apperrors.RemoteCallError(operation, err)
	}
	if len(gqlResp.Errors) > 0 {
		c.recordMetrics(operation, "error", start)
		return nil, apperrors.RemoteCallError(operation, fmt.Errorf("graphql: %s", gqlResp.Errors[0].Message))
	}

	c.recordMetrics(operation, "success", start)
	return gqlResp.Data, nil
}

func (c *Client) recordMetrics(operation, status string, start time.Time) {
	duration := metrics.MeasureDuration(start)
	metrics.MondayRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.MondayRequestTotal.WithLabelValues(operation, status).Inc()
}
