// Package igdb is a client for the igdb game catalog api
// (https://api-docs.igdb.com). requests are gated through a shared
// rate limiter so an arbitrary number of callers stays under the
// documented request ceiling.
package igdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gamereviews-backend/lib/restyutil"
	"gamereviews-backend/lib/retryutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("catalog/igdb")

// MaxPageSize is the documented maximum record count per request.
const MaxPageSize = 500

var ErrRateLimited = errors.New("igdb: rate limited")

type ClientOptions struct {
	// BaseUrl defaults to the public api endpoint.
	BaseUrl string
	// twitch developer credentials, both are required.
	ClientID    string
	AccessToken string
	// RequestsPerSecond defaults to 4, the documented ceiling.
	RequestsPerSecond float64
	// RateLimitCooldown is slept before retrying a request answered
	// with 429. defaults to 2s.
	RateLimitCooldown time.Duration
	// RateLimitRetries bounds how often one page is retried after
	// 429 responses. defaults to 5.
	RateLimitRetries int
	// Retry is applied to timeouts and 5xx responses.
	Retry retryutil.Policy
	// InstrumentOutput optionally dumps http exchanges for debugging.
	InstrumentOutput restyutil.InstrumentOutput
}

type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	opts    ClientOptions
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.ClientID == "" || opts.AccessToken == "" {
		return nil, fmt.Errorf("igdb: client id and access token are required")
	}
	if opts.BaseUrl == "" {
		opts.BaseUrl = "https://api.igdb.com/v4"
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 4
	}
	if opts.RateLimitCooldown <= 0 {
		opts.RateLimitCooldown = time.Second * 2
	}
	if opts.RateLimitRetries <= 0 {
		opts.RateLimitRetries = 5
	}
	if opts.Retry.MaxRetries == 0 {
		opts.Retry = retryutil.Policy{
			MaxRetries:  3,
			InitialWait: time.Second,
			StepWait:    time.Second,
		}
	}

	httpClient := resty.New()
	httpClient.SetTimeout(time.Minute)
	httpClient.SetBaseURL(opts.BaseUrl)
	httpClient.SetHeader("Client-ID", opts.ClientID)
	httpClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", opts.AccessToken))

	// burst of 1 keeps the spacing between requests fixed instead of
	// allowing an initial burst over the ceiling
	limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	restyutil.InstrumentClient(httpClient, tracer, opts.InstrumentOutput)

	return &Client{http: httpClient, limiter: limiter, opts: opts}, nil
}

// Games fetches one page of the catalog matching the apicalypse
// filter expression. an empty page means the window is exhausted.
// a 429 answer sleeps the configured cooldown and retries the same
// page, other transient failures follow the client's retry policy.
func (c *Client) Games(ctx context.Context, filter string, offset, limit int64) ([]Game, error) {
	ctx, span := tracer.Start(ctx, "Games")
	defer span.End()

	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	span.SetAttributes(
		attribute.String("filter", filter),
		attribute.Int64("offset", offset),
		attribute.Int64("limit", limit),
	)

	query := gamesQuery{Where: filter, Offset: offset, Limit: limit}.String()

	var page []Game
	cooldowns := 0
	err := c.opts.Retry.Do(ctx, func() error {
		// 429 answers cool down and resend the identical page inside
		// one attempt, they never consume the transient retry budget
		for {
			res, err := c.http.R().
				SetContext(ctx).
				SetHeader("content-type", "text/plain").
				SetBody(query).
				Post("/games")
			if err != nil {
				return fmt.Errorf("fetch games: %w", err)
			}

			switch {
			case res.StatusCode() == http.StatusOK:
				page = nil
				err = json.Unmarshal(res.Body(), &page)
				if err != nil {
					return retryutil.Permanent(fmt.Errorf("unmarshal games: %w", err))
				}
				return nil
			case res.StatusCode() == http.StatusTooManyRequests:
				cooldowns++
				if cooldowns > c.opts.RateLimitRetries {
					return retryutil.Permanent(ErrRateLimited)
				}
				select {
				case <-ctx.Done():
					return retryutil.Permanent(ctx.Err())
				case <-time.After(c.opts.RateLimitCooldown):
				}
			case res.StatusCode() >= 500:
				return fmt.Errorf("igdb: server error: %s", res.Status())
			default:
				return retryutil.Permanent(fmt.Errorf("igdb: unexpected status: %s", res.Status()))
			}
		}
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("records", len(page)))
	return page, nil
}
