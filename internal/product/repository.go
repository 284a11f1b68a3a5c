package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shopelite/internal/logger"
	"shopelite/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Repository reads raw records from the remote catalog.
type Repository interface {
	GetProducts(ctx context.Context) ([]SourceRecord, error)
	GetCategories(ctx context.Context) ([]string, error)
	GetProductByID(ctx context.Context, id int) (*SourceRecord, error)
}

type httpRepository struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	stats      *metrics.RequestStats
}

// NewRepository returns an HTTP catalog client. requestsPerSecond throttles
// outbound calls; values <= 0 disable throttling.
func NewRepository(baseURL string, requestsPerSecond float64) Repository {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &httpRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(limit, 1),
		stats:   &metrics.RequestStats{},
	}
}

func (r *httpRepository) GetProducts(ctx context.Context) ([]SourceRecord, error) {
	var out []SourceRecord
	if err := r.getJSON(ctx, "/products", &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: products payload is not a list", ErrMalformedResponse)
	}
	return out, nil
}

func (r *httpRepository) GetCategories(ctx context.Context) ([]string, error) {
	var out []string
	if err := r.getJSON(ctx, "/products/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *httpRepository) GetProductByID(ctx context.Context, id int) (*SourceRecord, error) {
	if id <= 0 {
		return nil, ErrInvalidProductID
	}

	var out *SourceRecord
	if err := r.getJSON(ctx, "/products/"+strconv.Itoa(id), &out); err != nil {
		return nil, err
	}
	// fakestore-style sources answer unknown ids with 200 and an empty body
	if out == nil || out.ID == 0 {
		return nil, ErrProductNotFound
	}
	return out, nil
}

func (r *httpRepository) getJSON(ctx context.Context, path string, dest any) (err error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("path", path),
	)

	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}

	timer := metrics.StartTimer()
	defer func() {
		// a 404 is an answer, not a failed call
		if errors.Is(err, ErrProductNotFound) {
			r.stats.Record(nil)
		} else {
			r.stats.Record(err)
		}
		log.Debug("catalog call finished",
			zap.Duration("duration", timer.Duration()),
			zap.Uint64("failures_total", r.stats.Failures.Load()),
		)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		log.Error("catalog request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	log.Debug("catalog response", zap.Int("status", resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		return ErrProductNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
