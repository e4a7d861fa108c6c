package mail

// FollowupEmailData feeds templates/document_followup.html.
type FollowupEmailData struct {
	FirstName     string
	DocumentTitle string
	DocumentURL   string
	LandingURL    string
}

// SalesNotificationData feeds templates/sales_notification.html.
type SalesNotificationData struct {
	Name      string
	Email     string
	Company   string
	Title     string
	Industry  string
	Country   string
	Employees int
	Score     int
	Reasons   []string
}

type EmailSender struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	SiteURL    string
	SalesInbox string
}
