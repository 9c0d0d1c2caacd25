// Package notify posts finished wizard messages to the Slack relay service.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// Path is the relay route that forwards a message to Slack.
const Path = "/api/slack/send-message"

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// Receipt is the service's acknowledgment of a delivered message.
type Receipt struct {
	Timestamp string
}

type request struct {
	Message string `json:"message"`
}

type response struct {
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Endpoint joins a base URL and the relay path. An empty base yields the
// relative path.
func Endpoint(base string) string {
	return strings.TrimRight(base, "/") + Path
}

// Client sends messages to one relay endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient returns a client for the relay at base, which must be an
// absolute http or https URL.
func NewClient(base string, opts ...ClientOption) (*Client, error) {
	endpoint := Endpoint(base)
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be an absolute http(s) URL", base)
	}

	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the full URL messages are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts message and waits for the service's answer. Any failure is a
// *DeliveryError.
func (c *Client) Send(ctx context.Context, message string) (Receipt, error) {
	body, err := json.Marshal(request{Message: message})
	if err != nil {
		return Receipt{}, &DeliveryError{Class: Transport, Message: msgTransport, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Receipt{}, &DeliveryError{Class: Transport, Message: msgTransport, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return Receipt{}, &DeliveryError{Class: Timeout, Message: msgTimeout, Err: err}
		}
		return Receipt{}, &DeliveryError{Class: Transport, Message: msgTransport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		if isTimeout(err) {
			return Receipt{}, &DeliveryError{Class: Timeout, Status: resp.StatusCode, Message: msgTimeout, Err: err}
		}
		return Receipt{}, &DeliveryError{Class: Transport, Status: resp.StatusCode, Message: msgTransport, Err: err}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	var out response
	if err := json.Unmarshal(data, &out); err != nil {
		return Receipt{}, &DeliveryError{Class: Malformed, Status: resp.StatusCode, Message: msgMalformed, Err: err}
	}

	if ok && out.Success {
		return Receipt{Timestamp: out.Timestamp}, nil
	}

	msg := out.Error
	if msg == "" {
		msg = msgRejected
	}
	return Receipt{}, &DeliveryError{Class: Rejected, Status: resp.StatusCode, Message: msg}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
