package brightdata

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultDatasetID = "gd_lpfll7v5hcqtkxl6l"

// Client talks to the BrightData dataset scrape API.
type Client struct {
	baseURL    string
	apiKey     string
	datasetID  string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		datasetID: defaultDatasetID,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// Scrape issues one batched discover call for the given queries and returns
// every listing the provider could scrape. The call is synchronous with no
// retry: a non-success response fails the whole call so the run can abort
// with the upstream status. Rows that fail to parse or carry an error marker
// are dropped silently.
func (c *Client) Scrape(ctx context.Context, queries []QueryInput) ([]Listing, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("provider API key is not configured")
	}

	body, err := json.Marshal(scrapeRequest{Input: queries})
	if err != nil {
		return nil, fmt.Errorf("marshal scrape request: %w", err)
	}

	fullURL := fmt.Sprintf(
		"%s/datasets/v3/scrape?dataset_id=%s&notify=false&include_errors=true&type=discover_new&discover_by=url",
		c.baseURL, c.datasetID,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("provider returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(raw)),
		)
		return nil, fmt.Errorf("provider error %d: %s", resp.StatusCode, string(raw))
	}

	listings := c.parseNDJSON(resp.Body)

	c.logger.Info("scrape call completed",
		zap.Int("queries", len(queries)),
		zap.Int("listings", len(listings)),
	)

	return listings, nil
}

// parseNDJSON reads one JSON value per line. A line may hold a single listing
// or an array of listings. Malformed lines, empty rows, and rows carrying the
// provider's error marker are skipped.
func (c *Client) parseNDJSON(r io.Reader) []Listing {
	var listings []Listing

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var batch []Listing
		if line[0] == '[' {
			if err := json.Unmarshal(line, &batch); err != nil {
				c.logger.Debug("dropping malformed provider row", zap.Error(err))
				continue
			}
		} else {
			var single Listing
			if err := json.Unmarshal(line, &single); err != nil {
				c.logger.Debug("dropping malformed provider row", zap.Error(err))
				continue
			}
			batch = []Listing{single}
		}

		for _, item := range batch {
			if item.Title == "" || item.Error != nil {
				continue
			}
			listings = append(listings, item)
		}
	}

	if err := scanner.Err(); err != nil {
		c.logger.Warn("provider response truncated", zap.Error(err))
	}

	return listings
}
