// Package roomclient is the reservation-service's HTTP client for the room-service.
package roomclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/pkg/breaker"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

type Client struct {
	baseURL *url.URL
	http    *http.Client
	breaker *breaker.CircuitBreaker
	timeout time.Duration
}

// New returns a client whose calls all go through cb. timeout bounds each call.
func New(baseURL string, httpClient *http.Client, cb *breaker.CircuitBreaker, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid room service url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: u,
		http:    httpClient,
		breaker: cb,
		timeout: timeout,
	}, nil
}

// IsCallSuccessful is the success predicate of the room-service breaker. A 404 is an
// answer from a healthy service.
func IsCallSuccessful(err error) bool {
	return err == nil || errs.Is(err, errs.ErrRoomNotFound)
}

type roomPayload struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

type statusPayload struct {
	Status string `json:"status"`
}

func (c *Client) GetRoom(ctx context.Context, id int64) (*usecase.RoomSnapshot, error) {
	return breaker.Call(c.breaker, func() (*usecase.RoomSnapshot, error) {
		var payload roomPayload
		if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/rooms/%d", id), nil, &payload); err != nil {
			return nil, err
		}
		return &usecase.RoomSnapshot{
			ID:       payload.ID,
			Category: payload.Category,
			Status:   room.Status(payload.Status),
		}, nil
	})
}

func (c *Client) SetRoomStatus(ctx context.Context, id int64, status room.Status) error {
	return c.breaker.Execute(func() error {
		return c.do(ctx, http.MethodPatch, fmt.Sprintf("/rooms/%d/status", id), statusPayload{Status: status.String()}, nil)
	})
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errs.Wrap(err, "encode request body")
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return errs.Mark(errs.Wrapf(err, "build %s %s", method, path), errs.ErrRemoteTransport)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.Mark(errs.Wrapf(err, "%s %s", method, path), errs.ErrRemoteTransport)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.Wrapf(errs.ErrRoomNotFound, "%s %s", method, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return errs.Mark(
			errs.New(fmt.Sprintf("%s %s: unexpected status %d", method, path, resp.StatusCode)),
			errs.ErrRemoteTransport,
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Mark(errs.Wrapf(err, "decode %s %s", method, path), errs.ErrRemoteTransport)
	}
	return nil
}
