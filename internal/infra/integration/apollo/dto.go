package apollo

// enrichRequest is the Apollo organization-enrichment call.
type enrichRequest struct {
	APIKey string `json:"api_key"`
	Domain string `json:"domain"`
}

type enrichResponse struct {
	Organization *organization `json:"organization"`
}

type organization struct {
	Name                  string `json:"name"`
	PrimaryDomain         string `json:"primary_domain"`
	Industry              string `json:"industry"`
	EstimatedNumEmployees int    `json:"estimated_num_employees"`
	Country               string `json:"country"`
	AnnualRevenuePrinted  string `json:"annual_revenue_printed"`
	WebsiteURL            string `json:"website_url"`
}
