package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"net/http"
	"time"

	"stonkgaze/internal/market"
)

type chartMeta struct {
	Currency                   string  `json:"currency"`
	Symbol                     string  `json:"symbol"`
	ShortName                  string  `json:"shortName"`
	LongName                   string  `json:"longName"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
	ChartPreviousClose         float64 `json:"chartPreviousClose"`
	PreviousClose              float64 `json:"previousClose"`
	RegularMarketVolume        int64   `json:"regularMarketVolume"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta       chartMeta `json:"meta"`
			Timestamp  []int64   `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *Client) chart(ctx context.Context, symbol, interval, rng string) (*chartResponse, error) {
	query := maps.Clone(c.query)
	if query == nil {
		query = map[string][]string{}
	}
	query.Set("interval", interval)
	query.Set("range", rng)

	url := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, symbol, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("unknown symbol %q", symbol)
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("rate limited")
	default:
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	var body chartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding chart response: %w", err)
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("chart error: %s: %s", body.Chart.Error.Code, body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart result for %q", symbol)
	}
	return &body, nil
}

// Snapshot returns the live view of a symbol from chart metadata.
func (c *Client) Snapshot(ctx context.Context, symbol string) (market.Snapshot, error) {
	body, err := c.chart(ctx, symbol, "1d", "2d")
	if err != nil {
		return market.Snapshot{}, err
	}
	meta := body.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return market.Snapshot{}, fmt.Errorf("no usable price for %q", symbol)
	}

	name := meta.ShortName
	if name == "" {
		name = meta.LongName
	}
	if name == "" {
		name = symbol
	}
	prev := meta.RegularMarketPreviousClose
	if prev <= 0 {
		prev = meta.ChartPreviousClose
	}
	if prev <= 0 {
		prev = meta.PreviousClose
	}
	return market.Snapshot{
		Symbol:        symbol,
		Name:          name,
		Price:         meta.RegularMarketPrice,
		PreviousClose: prev,
		Volume:        meta.RegularMarketVolume,
		Currency:      meta.Currency,
	}, nil
}

// History returns daily closes for the trailing window, oldest first.
// Null closes (market holidays, partial sessions) are skipped.
func (c *Client) History(ctx context.Context, symbol string, days int) ([]market.PricePoint, error) {
	body, err := c.chart(ctx, symbol, "1d", fmt.Sprintf("%dd", days))
	if err != nil {
		return nil, err
	}
	result := body.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	closes := result.Indicators.Quote[0].Close

	points := make([]market.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, market.PricePoint{
			Timestamp: time.Unix(ts, 0).UTC(),
			Price:     math.Round(*closes[i]*100) / 100,
		})
	}
	return points, nil
}
