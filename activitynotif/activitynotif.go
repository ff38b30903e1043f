package activitynotif

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

var (
	instance *ActivityNotifier
	once     sync.Once
)

type ActivityNotifier struct {
	webhookURL  string
	environment string
	appName     string
	mu          sync.RWMutex
}

// Init initializes the global activity notifier instance
func Init(webhookURL, environment string) {
	once.Do(func() {
		instance = &ActivityNotifier{
			webhookURL:  webhookURL,
			environment: environment,
			appName:     "SocialCatalyst",
		}
	})
}

// New sends an advocacy activity notification to the configured webhook
func New(employeeID, message string) {
	if instance == nil {
		log.Printf("⚠️ Activity notifier not initialized, skipping notification: %s", message)
		return
	}

	instance.send(employeeID, message)
}

func (s *ActivityNotifier) send(employeeID, message string) {
	if s.webhookURL == "" {
		return // Activity notifications disabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Send notification asynchronously to avoid blocking
	go s.sendWebhookNotification(employeeID, message)
}

func (s *ActivityNotifier) sendWebhookNotification(employeeID, message string) {
	fields := []map[string]any{
		{"type": "mrkdwn", "text": fmt.Sprintf("*Service:* %s", s.appName)},
		{"type": "mrkdwn", "text": fmt.Sprintf("*Environment:* %s", s.environment)},
	}

	if employeeID != "" {
		fields = append(fields, map[string]any{
			"type": "mrkdwn",
			"text": fmt.Sprintf("*EmployeeID:* `%s`", employeeID),
		})
	}

	fields = append(fields, map[string]any{
		"type": "mrkdwn",
		"text": fmt.Sprintf("*Timestamp:* %s", time.Now().Format("2006-01-02 15:04:05 UTC")),
	})

	payload := map[string]any{
		"blocks": []map[string]any{
			{
				"type":   "section",
				"fields": fields,
			},
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": fmt.Sprintf("📊 *Activity:*\n%s", message),
				},
			},
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		log.Printf("❌ Failed to marshal activity notification payload: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", s.webhookURL, strings.NewReader(string(payloadBytes)))
	if err != nil {
		log.Printf("❌ Failed to create activity notification request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("❌ Failed to send activity notification: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ Activity notification failed with status: %d", resp.StatusCode)
		return
	}

	log.Printf("💰 Activity notification sent: %s", message)
}
