package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultDataset is the HuggingFace dataset of LSAT Logical Reasoning
// problems this tool was built around.
const DefaultDataset = "tasksource/lsat-lr"

const hfRowsURL = "https://datasets-server.huggingface.co/rows"

// pageSize is the rows-API maximum page length.
const pageSize = 100

// HFClient fetches dataset rows from the HuggingFace datasets server.
type HFClient struct {
	Dataset string
	Split   string
	BaseURL string // test override; defaults to the public datasets server
	client  *http.Client
}

// NewHFClient creates a client for the given dataset (DefaultDataset
// when empty), train split.
func NewHFClient(dataset string) *HFClient {
	if dataset == "" {
		dataset = DefaultDataset
	}
	return &HFClient{
		Dataset: dataset,
		Split:   "train",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type hfRowsResponse struct {
	Rows []struct {
		RowIdx int     `json:"row_idx"`
		Row    jsonRow `json:"row"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

// Fetch downloads up to limit problems, paging through the rows API.
// limit <= 0 fetches the whole split.
func (c *HFClient) Fetch(ctx context.Context, limit int) ([]Problem, error) {
	var problems []Problem
	offset := 0

	for {
		length := pageSize
		if limit > 0 && limit-len(problems) < length {
			length = limit - len(problems)
		}
		if length <= 0 {
			break
		}

		page, total, err := c.fetchPage(ctx, offset, length)
		if err != nil {
			return nil, err
		}
		problems = append(problems, page...)
		offset += len(page)

		if len(page) == 0 || offset >= total {
			break
		}
	}

	slog.Info("dataset: fetched problems",
		"dataset", c.Dataset,
		"split", c.Split,
		"count", len(problems),
	)
	return problems, nil
}

func (c *HFClient) fetchPage(ctx context.Context, offset, length int) ([]Problem, int, error) {
	base := c.BaseURL
	if base == "" {
		base = hfRowsURL
	}

	q := url.Values{}
	q.Set("dataset", c.Dataset)
	q.Set("config", "default")
	q.Set("split", c.Split)
	q.Set("offset", fmt.Sprintf("%d", offset))
	q.Set("length", fmt.Sprintf("%d", length))

	req, err := http.NewRequestWithContext(ctx, "GET", base+"?"+q.Encode(), nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching dataset rows: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading rows response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("datasets server error %d: %s", resp.StatusCode, string(body))
	}

	var parsed hfRowsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, 0, fmt.Errorf("decoding rows response: %w", err)
	}

	problems := make([]Problem, 0, len(parsed.Rows))
	for _, r := range parsed.Rows {
		problems = append(problems, r.Row.toProblem(r.RowIdx))
	}
	return problems, parsed.NumRowsTotal, nil
}
