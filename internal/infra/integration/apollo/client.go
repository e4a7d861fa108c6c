package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/intelleges/iaos-website-sub000/internal/entity"
)

// Client wraps Apollo.io organization enrichment. Enrichment is strictly
// best-effort: every failure path returns (nil, "", nil) so scoring degrades
// to the no-enrichment branch instead of erroring out.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.apollo.io/v1"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// EnrichCompany looks the company up by the lead's email domain. The second
// return value is the raw provider payload, kept for the audit row.
func (c *Client) EnrichCompany(ctx context.Context, email, company string) (*entity.Enrichment, string, error) {
	if c.apiKey == "" {
		return nil, "", nil
	}

	domain := emailDomain(email)
	if domain == "" {
		return nil, "", nil
	}

	payload := enrichRequest{APIKey: c.apiKey, Domain: domain}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, "", nil
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/organizations/enrich", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, "", nil
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[APOLLO] request failed for %s: %v", domain, err)
		return nil, "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[APOLLO] enrich rejected for %s (status %d): %s", domain, resp.StatusCode, string(body))
		return nil, "", nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", nil
	}

	var response enrichResponse
	if err := json.Unmarshal(raw, &response); err != nil || response.Organization == nil {
		return nil, "", nil
	}

	org := response.Organization
	return &entity.Enrichment{
		Domain:        org.PrimaryDomain,
		Name:          org.Name,
		Industry:      org.Industry,
		EmployeeCount: org.EstimatedNumEmployees,
		Country:       org.Country,
		RevenueBand:   org.AnnualRevenuePrinted,
		Website:       org.WebsiteURL,
	}, string(raw), nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", "IntellegesWebsite/1.0")
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
