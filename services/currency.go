package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"airbnb-compare/models"
	"airbnb-compare/utils"
)

var (
	// ErrRateUnavailable means the quote service could not be reached or
	// answered with an error status.
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	// ErrMalformedRate means the quote service answered without a usable rate.
	ErrMalformedRate = errors.New("malformed exchange rate response")
	// ErrUnknownField is returned for a price field that listings do not have.
	ErrUnknownField = errors.New("unknown price field")
)

// PriceField is the only convertible column of a listing.
const PriceField = "price"

// RateProvider returns the current USD to EUR rate.
type RateProvider interface {
	USDToEUR(ctx context.Context) (float64, error)
}

// RateClient queries a Frankfurter-compatible quote endpoint.
type RateClient struct {
	base   string
	hc     *http.Client
	retry  *utils.RetryConfig
	logger *utils.Logger
}

// NewRateClient creates a RateClient. Every request is bounded by timeout and
// transient failures are retried up to maxAttempts in total.
func NewRateClient(base string, timeout time.Duration, maxAttempts int, logger *utils.Logger) *RateClient {
	return &RateClient{
		base: base,
		hc:   &http.Client{Timeout: timeout},
		retry: &utils.RetryConfig{
			MaxAttempts: maxAttempts,
			BaseDelay:   250 * time.Millisecond,
			Logger:      logger,
		},
		logger: logger,
	}
}

type rateResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// USDToEUR fetches the latest rate. It never returns a zero or non-finite rate.
func (c *RateClient) USDToEUR(ctx context.Context) (float64, error) {
	u, err := url.Parse(c.base)
	if err != nil {
		return 0, fmt.Errorf("currency: parse url %q: %w", c.base, err)
	}
	q := u.Query()
	q.Set("from", "USD")
	q.Set("to", "EUR")
	u.RawQuery = q.Encode()

	var rate float64
	err = c.retry.Do(ctx, "fetch USD/EUR rate", func(ctx context.Context) error {
		r, err := c.fetch(ctx, u.String())
		if err != nil {
			return err
		}
		rate = r
		return nil
	})
	if err != nil {
		return 0, err
	}
	c.logger.Debug("[currency] USD→EUR rate %.6f", rate)
	return rate, nil
}

func (c *RateClient) fetch(ctx context.Context, u string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("currency: build request: %w: %w", err, utils.ErrPermanent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("currency: %w: %v", ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("currency: %w: status %d: %s", ErrRateUnavailable, resp.StatusCode, strings.TrimSpace(string(b)))
		if resp.StatusCode < http.StatusInternalServerError && resp.StatusCode != http.StatusTooManyRequests {
			return 0, fmt.Errorf("%w: %w", err, utils.ErrPermanent)
		}
		return 0, err
	}

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("currency: %w: %v: %w", ErrMalformedRate, err, utils.ErrPermanent)
	}
	rate, ok := body.Rates["EUR"]
	if !ok || rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("currency: %w: rates=%v: %w", ErrMalformedRate, body.Rates, utils.ErrPermanent)
	}
	return rate, nil
}

// CachedRate remembers a successfully fetched rate for ttl. Failures are
// never cached. A zero ttl disables caching.
type CachedRate struct {
	src RateProvider
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	rate      float64
	fetchedAt time.Time
	valid     bool
}

// NewCachedRate wraps src with an in-memory TTL cache.
func NewCachedRate(src RateProvider, ttl time.Duration) *CachedRate {
	return &CachedRate{src: src, ttl: ttl, now: time.Now}
}

// USDToEUR returns the cached rate while fresh, otherwise asks src.
func (c *CachedRate) USDToEUR(ctx context.Context) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.ttl > 0 && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.rate, nil
	}
	rate, err := c.src.USDToEUR(ctx)
	if err != nil {
		return 0, err
	}
	c.rate, c.fetchedAt, c.valid = rate, c.now(), true
	return rate, nil
}

// CurrencyConverter rescales listing prices from USD to EUR.
type CurrencyConverter struct {
	rates  RateProvider
	logger *utils.Logger
}

// NewCurrencyConverter creates a CurrencyConverter using rates.
func NewCurrencyConverter(rates RateProvider, logger *utils.Logger) *CurrencyConverter {
	return &CurrencyConverter{rates: rates, logger: logger}
}

// Convert returns a copy of listings with field multiplied by the current
// rate and rounded to 2 decimals. On any error nothing is converted.
func (c *CurrencyConverter) Convert(ctx context.Context, listings []models.Listing, field string) ([]models.Listing, error) {
	if field != PriceField {
		return nil, fmt.Errorf("currency: %q: %w", field, ErrUnknownField)
	}

	rate, err := c.rates.USDToEUR(ctx)
	if err != nil {
		return nil, err
	}

	r := decimal.NewFromFloat(rate)
	out := make([]models.Listing, len(listings))
	for i, l := range listings {
		l.Price = ScalePrice(l.Price, r)
		out[i] = l
	}
	c.logger.Info("[currency] Converted %d prices at USD→EUR %.4f", len(out), rate)
	return out, nil
}

// ScalePrice multiplies price by rate and rounds half away from zero to cents.
func ScalePrice(price float64, rate decimal.Decimal) float64 {
	return decimal.NewFromFloat(price).Mul(rate).Round(2).InexactFloat64()
}
