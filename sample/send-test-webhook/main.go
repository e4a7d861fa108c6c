// Posts a signed sample event batch to a locally running instance.
// Usage: go run ./sample/send-test-webhook [base-url]
package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

func main() {
	baseURL := "http://localhost:8080"
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}
	secret := os.Getenv("EMAIL_WEBHOOK_SECRET")

	now := time.Now().Unix()
	body := []byte(fmt.Sprintf(`[
		{"email":"test@example.com","timestamp":%d,"event":"delivered","sg_event_id":"evt-delivered-1"},
		{"email":"test@example.com","timestamp":%d,"event":"open","sg_event_id":"evt-open-1"},
		{"email":"bounced@example.com","timestamp":%d,"event":"bounce","reason":"550 mailbox unavailable","sg_event_id":"evt-bounce-1"}
	]`, now, now, now))

	req, err := http.NewRequest("POST", baseURL+"/webhooks/email-events", bytes.NewReader(body))
	if err != nil {
		fmt.Println("request error:", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	if secret != "" {
		ts := strconv.FormatInt(now, 10)
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(ts))
		mac.Write(body)
		req.Header.Set("X-Email-Webhook-Timestamp", ts)
		req.Header.Set("X-Email-Webhook-Signature", hex.EncodeToString(mac.Sum(nil)))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("send error:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("status: %d\nbody: %s\n", resp.StatusCode, respBody)
}
