/*
Package harvest is the time-tracking service client.

PURPOSE:
  Fetches the two inputs the engine needs: the active user roster and the
  summed time-report entries for a date range. Both endpoints paginate;
  the client follows next_page until exhausted.

ERROR MODEL:
  Any non-200 response becomes an *APIError carrying the status. Network
  and decode errors propagate as-is. The caller aborts the cadence run on
  any error; there is no retry here.
*/
package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/hours-sentinel/calendar"
	"github.com/warp/hours-sentinel/shortfall"
)

const defaultBaseURL = "https://api.harvestapp.com/v2"

// APIError is a non-200 response from the Harvest API.
type APIError struct {
	Status int
	Path   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("harvest: %s returned status %d", e.Path, e.Status)
}

// Client calls the Harvest v2 API.
type Client struct {
	accountID  string
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Harvest client for one account.
func NewClient(accountID, token string) *Client {
	return &Client{
		accountID:  accountID,
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

// =============================================================================
// WIRE TYPES
// =============================================================================

type userJSON struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	IsActive       bool   `json:"is_active"`
	WeeklyCapacity int    `json:"weekly_capacity"`
}

type usersPage struct {
	Users    []userJSON `json:"users"`
	NextPage *int       `json:"next_page"`
}

type reportRowJSON struct {
	UserID     int64   `json:"user_id"`
	TotalHours float64 `json:"total_hours"`
}

type reportPage struct {
	Results  []reportRowJSON `json:"results"`
	NextPage *int            `json:"next_page"`
}

// =============================================================================
// OPERATIONS
// =============================================================================

// ListUsers returns active roster users, minus any whose email appears in
// the excluded list (case-insensitive, pre-lowercased by config).
func (c *Client) ListUsers(ctx context.Context, excluded []string) ([]shortfall.User, error) {
	skip := make(map[string]bool, len(excluded))
	for _, e := range excluded {
		skip[e] = true
	}

	var users []shortfall.User
	page := 1
	for {
		path := fmt.Sprintf("/users?is_active=true&page=%d", page)
		var body usersPage
		if err := c.get(ctx, path, &body); err != nil {
			return nil, err
		}
		for _, u := range body.Users {
			if !u.IsActive || skip[strings.ToLower(u.Email)] {
				continue
			}
			users = append(users, shortfall.User{
				ID:             strconv.FormatInt(u.ID, 10),
				FirstName:      u.FirstName,
				LastName:       u.LastName,
				Email:          u.Email,
				IsActive:       u.IsActive,
				WeeklyCapacity: u.WeeklyCapacity,
			})
		}
		if body.NextPage == nil {
			return users, nil
		}
		page = *body.NextPage
	}
}

// ListTimeReport returns one entry per (user, reporting bucket) overlapping
// the inclusive date range. Callers sum the buckets per user.
func (c *Client) ListTimeReport(ctx context.Context, r calendar.Range) ([]shortfall.TimeEntry, error) {
	var entries []shortfall.TimeEntry
	page := 1
	for {
		path := fmt.Sprintf("/reports/time/team?from=%s&to=%s&page=%d",
			r.From.Time().Format("20060102"), r.To.Time().Format("20060102"), page)
		var body reportPage
		if err := c.get(ctx, path, &body); err != nil {
			return nil, err
		}
		for _, row := range body.Results {
			entries = append(entries, shortfall.TimeEntry{
				UserID: strconv.FormatInt(row.UserID, 10),
				Hours:  decimal.NewFromFloat(row.TotalHours),
			})
		}
		if body.NextPage == nil {
			return entries, nil
		}
		page = *body.NextPage
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Harvest-Account-Id", c.accountID)
	req.Header.Set("User-Agent", "hours-sentinel")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Path: path}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
