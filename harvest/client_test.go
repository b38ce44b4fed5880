package harvest_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/hours-sentinel/calendar"
	"github.com/warp/hours-sentinel/harvest"
)

func TestListUsers_PaginatesAndFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.Equal(t, "acct", r.Header.Get("Harvest-Account-Id"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `{
				"users": [
					{"id": 1, "first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com", "is_active": true, "weekly_capacity": 144000},
					{"id": 2, "first_name": "Bot", "last_name": "Account", "email": "Bot@example.com", "is_active": true, "weekly_capacity": 144000}
				],
				"next_page": 2
			}`)
		case "2":
			fmt.Fprint(w, `{
				"users": [
					{"id": 3, "first_name": "Blaise", "last_name": "Pascal", "email": "blaise@example.com", "is_active": true, "weekly_capacity": 86400}
				],
				"next_page": null
			}`)
		default:
			t.Fatalf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	client := harvest.NewClient("acct", "tok").WithBaseURL(srv.URL)
	users, err := client.ListUsers(context.Background(), []string{"bot@example.com"})
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.Equal(t, "1", users[0].ID)
	assert.Equal(t, "Ada Lovelace", users[0].FullName())
	assert.Equal(t, 144000, users[0].WeeklyCapacity)
	assert.Equal(t, "3", users[1].ID)
}

func TestListTimeReport_SendsRangeAndConverts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20250106", r.URL.Query().Get("from"))
		assert.Equal(t, "20250110", r.URL.Query().Get("to"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"results": [
				{"user_id": 1, "total_hours": 5.5},
				{"user_id": 1, "total_hours": 2.25}
			],
			"next_page": null
		}`)
	}))
	defer srv.Close()

	client := harvest.NewClient("acct", "tok").WithBaseURL(srv.URL)
	r := calendar.NewRange(
		calendar.NewDate(2025, time.January, 6),
		calendar.NewDate(2025, time.January, 10),
	)
	entries, err := client.ListTimeReport(context.Background(), r)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].UserID)
	assert.Equal(t, "5.5", entries[0].Hours.String())
	assert.Equal(t, "2.25", entries[1].Hours.String())
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := harvest.NewClient("acct", "tok").WithBaseURL(srv.URL)
	_, err := client.ListUsers(context.Background(), nil)
	require.Error(t, err)

	var apiErr *harvest.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
}
