package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"finderhub/internal/config"
)

const userAgent = "FinderHub/0.1.0"

// Event identifies a run milestone worth telling the operator about.
type Event string

const (
	EventRunStarted      Event = "run-started"
	EventRunCompleted    Event = "run-completed"
	EventRunFailed       Event = "run-failed"
	EventBudgetExhausted Event = "budget-exhausted"
	EventTest            Event = "test"
)

// Payload carries the values an event's message is built from.
type Payload map[string]string

// Service defines the notification surface exposed to batch jobs.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.Topic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

// Publish formats and sends one event. Unknown events are dropped silently.
func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	msg, ok := format(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, msg)
}

func format(event Event, payload Payload) (message, bool) {
	get := func(key string) string { return strings.TrimSpace(payload[key]) }

	switch event {
	case EventRunStarted:
		return message{
			title: "FinderHub - Run Started",
			body:  fmt.Sprintf("Started %s batch %s (%s providers)", get("job"), get("batch"), get("count")),
			tags:  []string{"finderhub", "run", "started"},
		}, true
	case EventRunCompleted:
		body := fmt.Sprintf("%s batch %s complete: %s updated, %s not found",
			get("job"), get("batch"), get("updated"), get("notFound"))
		if errors := get("errors"); errors != "" && errors != "0" {
			return message{
				title:    "FinderHub - Run Complete (with errors)",
				body:     fmt.Sprintf("%s, %s errors", body, errors),
				tags:     []string{"finderhub", "run", "completed"},
				priority: "high",
			}, true
		}
		return message{
			title: "FinderHub - Run Complete",
			body:  body,
			tags:  []string{"finderhub", "run", "completed"},
		}, true
	case EventRunFailed:
		body := "Run failed"
		if job := get("job"); job != "" {
			body = fmt.Sprintf("%s batch %s failed", job, get("batch"))
		}
		if reason := get("error"); reason != "" {
			body = fmt.Sprintf("%s: %s", body, reason)
		}
		return message{
			title:    "FinderHub - Run Failed",
			body:     body,
			tags:     []string{"finderhub", "error", "alert"},
			priority: "high",
		}, true
	case EventBudgetExhausted:
		return message{
			title:    "FinderHub - Budget Exhausted",
			body:     fmt.Sprintf("%s stopped: %s of %s credits used. Approve more credits before continuing.", get("job"), get("used"), get("ceiling")),
			tags:     []string{"finderhub", "budget", "alert"},
			priority: "high",
		}, true
	case EventTest:
		return message{
			title:    "FinderHub - Test",
			body:     "Notification system test",
			tags:     []string{"finderhub", "test"},
			priority: "low",
		}, true
	default:
		return message{}, false
	}
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" && msg.priority != "default" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
