package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"path/filepath"

	"gopkg.in/gomail.v2"

	"github.com/intelleges/iaos-website-sub000/internal/infra/queue"
)

func NewEmailSender(host string, port int, user, password, from, siteURL, salesInbox string) *EmailSender {
	return &EmailSender{
		Host:       host,
		Port:       port,
		User:       user,
		Password:   password,
		From:       from,
		SiteURL:    siteURL,
		SalesInbox: salesInbox,
	}
}

// Send delivers one pre-rendered HTML email over the SMTP relay.
func (s *EmailSender) Send(to, toName, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	if toName != "" {
		m.SetAddressHeader("To", to, toName)
	} else {
		m.SetHeader("To", to)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}

// BuildDocumentFollowup renders the follow-up body at scheduling time so the
// outbox row is self-contained. The landing URL carries UTM parameters for
// attribution.
func (s *EmailSender) BuildDocumentFollowup(firstName, documentTitle, documentURL string) (string, string, error) {
	landing := fmt.Sprintf(
		"%s/resources?utm_source=followup_email&utm_medium=email&utm_campaign=document_followup&doc=%s",
		s.SiteURL, url.QueryEscape(documentTitle),
	)

	data := FollowupEmailData{
		FirstName:     firstName,
		DocumentTitle: documentTitle,
		DocumentURL:   documentURL,
		LandingURL:    landing,
	}

	body, err := renderTemplate("document_followup.html", data)
	if err != nil {
		return "", "", err
	}

	subject := fmt.Sprintf("Following up on %q", documentTitle)
	return subject, body, nil
}

// SendSalesNotification emails the sales inbox about a freshly qualified lead.
func (s *EmailSender) SendSalesNotification(payload queue.QualifiedLeadPayload) error {
	data := SalesNotificationData{
		Name:      payload.Name,
		Email:     payload.Email,
		Company:   payload.Company,
		Title:     payload.Title,
		Industry:  payload.Industry,
		Country:   payload.Country,
		Employees: payload.Employees,
		Score:     payload.Score,
		Reasons:   payload.Reasons,
	}

	body, err := renderTemplate("sales_notification.html", data)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Qualified lead: %s at %s (score %d)", payload.Name, payload.Company, payload.Score)
	return s.Send(s.SalesInbox, "Sales", subject, body)
}

func renderTemplate(name string, data any) (string, error) {
	tmplPath := filepath.Join("templates", name)
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return "", fmt.Errorf("failed to read email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}

	return body.String(), nil
}
