package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

var webhookClient = &http.Client{Timeout: 10 * time.Second}

// notifyWebhook posts the run result to an external automation hook.
// Delivery is best effort; failures are reported and swallowed.
func notifyWebhook(ctx context.Context, url string, result *Result) {
	if url == "" {
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		fmt.Printf("Warning: Failed to marshal webhook payload: %v\n", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Warning: Failed to create webhook request: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := webhookClient.Do(req)
	if err != nil {
		fmt.Printf("Warning: Webhook delivery failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		fmt.Printf("Warning: Webhook returned status %d\n", resp.StatusCode)
	}
}
