// Package api is a fasthttp client for the rollcall REST API.
package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rollcall/internal/constants"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/errgroup"
)

type Client struct {
	baseURL string
	client  *fasthttp.Client
}

// StatusError is returned for any non-200 response. Message carries the
// server's {"error": ...} body when present.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error: %d", e.Status)
	}
	return fmt.Sprintf("API error: %d: %s", e.Status, e.Message)
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         constants.ClientTimeout,
			WriteTimeout:        constants.ClientTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *Client) ListPlayers(ctx context.Context) ([]Player, error) {
	players, err := doRequest[[]Player](ctx, c, fasthttp.MethodGet, "/api/players", nil)
	if err != nil {
		return nil, err
	}
	return *players, nil
}

func (c *Client) CreatePlayer(ctx context.Context, name string, phone *string) (*Player, error) {
	return doRequest[Player](ctx, c, fasthttp.MethodPost, "/api/players", createPlayerRequest{Name: name, Phone: phone})
}

func (c *Client) ListMatches(ctx context.Context) ([]Match, error) {
	matches, err := doRequest[[]Match](ctx, c, fasthttp.MethodGet, "/api/matches", nil)
	if err != nil {
		return nil, err
	}
	return *matches, nil
}

func (c *Client) CreateMatch(ctx context.Context, date string, price *float64) (*Match, error) {
	return doRequest[Match](ctx, c, fasthttp.MethodPost, "/api/matches", createMatchRequest{Date: date, Price: price})
}

func (c *Client) AddPlayerToMatch(ctx context.Context, matchID, playerID int64) error {
	path := fmt.Sprintf("/api/match/%d/add-player", matchID)
	_, err := doRequest[successResponse](ctx, c, fasthttp.MethodPost, path, playerIDRequest{PlayerID: playerID})
	return err
}

func (c *Client) RosteredPlayers(ctx context.Context, matchID int64) ([]RosterEntry, error) {
	entries, err := doRequest[[]RosterEntry](ctx, c, fasthttp.MethodGet, fmt.Sprintf("/api/match/%d/players", matchID), nil)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func (c *Client) Attendance(ctx context.Context, matchID int64) ([]AttendanceEntry, error) {
	entries, err := doRequest[[]AttendanceEntry](ctx, c, fasthttp.MethodGet, fmt.Sprintf("/api/attendance/%d", matchID), nil)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func (c *Client) SetPaid(ctx context.Context, matchID, playerID int64, paid bool) (*SetPaidResponse, error) {
	return doRequest[SetPaidResponse](ctx, c, fasthttp.MethodPost, "/api/attendance", setPaidRequest{
		MatchID:  matchID,
		PlayerID: playerID,
		Paid:     paid,
	})
}

// Snapshot fetches players and matches concurrently.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		players, err := c.ListPlayers(gctx)
		if err != nil {
			return fmt.Errorf("failed to list players: %w", err)
		}
		snap.Players = players
		return nil
	})
	g.Go(func() error {
		matches, err := c.ListMatches(gctx)
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		snap.Matches = matches
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func doRequest[T any](ctx context.Context, client *Client, method, path string, body any) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		statusErr := &StatusError{Status: resp.StatusCode()}
		var errBody errorResponse
		if err := sonic.Unmarshal(resp.Body(), &errBody); err == nil {
			statusErr.Message = errBody.Error
		}
		return nil, statusErr
	}

	var result T
	if err := sonic.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
