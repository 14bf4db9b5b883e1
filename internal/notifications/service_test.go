package notifications_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"finderhub/internal/config"
	"finderhub/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.Topic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.Publish(context.Background(), notifications.EventTest, nil); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		event          notifications.Event
		payload        notifications.Payload
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name:  "run started",
			event: notifications.EventRunStarted,
			payload: notifications.Payload{
				"job":   "licenses",
				"batch": "3",
				"count": "50",
			},
			expectTitle:   "FinderHub - Run Started",
			expectMessage: "Started licenses batch 3 (50 providers)",
			expectTags:    "finderhub,run,started",
		},
		{
			name:  "run completed clean",
			event: notifications.EventRunCompleted,
			payload: notifications.Payload{
				"job":      "ratings",
				"batch":    "1",
				"updated":  "18",
				"notFound": "7",
				"errors":   "0",
			},
			expectTitle:   "FinderHub - Run Complete",
			expectMessage: "ratings batch 1 complete: 18 updated, 7 not found",
			expectTags:    "finderhub,run,completed",
		},
		{
			name:  "run completed with errors",
			event: notifications.EventRunCompleted,
			payload: notifications.Payload{
				"job":      "ratings",
				"batch":    "1",
				"updated":  "12",
				"notFound": "5",
				"errors":   "3",
			},
			expectTitle:    "FinderHub - Run Complete (with errors)",
			expectMessage:  "ratings batch 1 complete: 12 updated, 5 not found, 3 errors",
			expectTags:     "finderhub,run,completed",
			expectPriority: "high",
		},
		{
			name:  "run failed",
			event: notifications.EventRunFailed,
			payload: notifications.Payload{
				"job":   "licenses",
				"batch": "2",
				"error": "directory unreachable",
			},
			expectTitle:    "FinderHub - Run Failed",
			expectMessage:  "licenses batch 2 failed: directory unreachable",
			expectTags:     "finderhub,error,alert",
			expectPriority: "high",
		},
		{
			name:  "budget exhausted",
			event: notifications.EventBudgetExhausted,
			payload: notifications.Payload{
				"job":     "firecrawl",
				"used":    "2899",
				"ceiling": "2900",
			},
			expectTitle:    "FinderHub - Budget Exhausted",
			expectMessage:  "firecrawl stopped: 2899 of 2900 credits used. Approve more credits before continuing.",
			expectTags:     "finderhub,budget,alert",
			expectPriority: "high",
		},
		{
			name:           "test",
			event:          notifications.EventTest,
			expectTitle:    "FinderHub - Test",
			expectMessage:  "Notification system test",
			expectTags:     "finderhub,test",
			expectPriority: "low",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				gotTitle    string
				gotMessage  string
				gotTags     string
				gotPriority string
			)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				gotTitle = r.Header.Get("Title")
				gotMessage = string(body)
				gotTags = r.Header.Get("Tags")
				gotPriority = r.Header.Get("Priority")
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.Topic = server.URL

			svc := notifications.NewService(&cfg)
			if err := svc.Publish(context.Background(), tt.event, tt.payload); err != nil {
				t.Fatalf("Publish: %v", err)
			}
			if gotTitle != tt.expectTitle {
				t.Fatalf("title = %q, want %q", gotTitle, tt.expectTitle)
			}
			if gotMessage != tt.expectMessage {
				t.Fatalf("message = %q, want %q", gotMessage, tt.expectMessage)
			}
			if gotTags != tt.expectTags {
				t.Fatalf("tags = %q, want %q", gotTags, tt.expectTags)
			}
			if gotPriority != tt.expectPriority {
				t.Fatalf("priority = %q, want %q", gotPriority, tt.expectPriority)
			}
		})
	}
}

func TestNtfyServiceSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic not found", http.StatusNotFound)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.Topic = server.URL

	svc := notifications.NewService(&cfg)
	if err := svc.Publish(context.Background(), notifications.EventTest, nil); err == nil {
		t.Fatal("expected error from ntfy failure")
	}
}
