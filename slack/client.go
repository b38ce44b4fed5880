/*
Package slack delivers shortfall reports to a chat channel.

PURPOSE:
  Two Web API calls (users.list for email-to-member matching, chat.postMessage
  for delivery) plus the block rendering that turns flagged users into a
  readable message. The Slack Web API wraps errors in a 200 response with
  ok=false, so both calls check that envelope.
*/
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://slack.com/api"

// APIError is an ok=false envelope from the Slack Web API.
type APIError struct {
	Method string
	Reason string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack: %s failed: %s", e.Method, e.Reason)
}

// Member is a workspace member, used to match roster emails to mentions.
type Member struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
	Profile struct {
		Email string `json:"email"`
	} `json:"profile"`
}

// Client calls the Slack Web API with a bot token.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL overrides the API base URL. Used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// ListMembers returns all non-deleted workspace members.
func (c *Client) ListMembers(ctx context.Context) ([]Member, error) {
	var body struct {
		OK      bool     `json:"ok"`
		Error   string   `json:"error"`
		Members []Member `json:"members"`
	}
	if err := c.call(ctx, http.MethodGet, "users.list", nil, &body); err != nil {
		return nil, err
	}
	if !body.OK {
		return nil, &APIError{Method: "users.list", Reason: body.Error}
	}
	members := body.Members[:0:0]
	for _, m := range body.Members {
		if !m.Deleted {
			members = append(members, m)
		}
	}
	return members, nil
}

// PostMessage posts a block message to a channel.
func (c *Client) PostMessage(ctx context.Context, channel string, blocks []Block) error {
	payload := map[string]any{
		"channel": channel,
		"blocks":  blocks,
	}
	var body struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := c.call(ctx, http.MethodPost, "chat.postMessage", payload, &body); err != nil {
		return err
	}
	if !body.OK {
		return &APIError{Method: "chat.postMessage", Reason: body.Error}
	}
	return nil
}

func (c *Client) call(ctx context.Context, method, apiMethod string, payload, out any) error {
	var buf bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+apiMethod, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Method: apiMethod, Reason: resp.Status}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
