// Package email delivers newsletter campaigns.
package email

import (
	"context"
	"fmt"
	"net/url"

	"dalil/pkg/logger"

	"github.com/resend/resend-go/v3"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type resendSender struct {
	client    *resend.Client
	fromEmail string
}

func NewResendSender(apiKey, fromEmail string) Sender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}
}

func (s *resendSender) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("دليل <%s>", s.fromEmail),
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	return nil
}

// logSender only logs. It stands in for Resend when RESEND_API_KEY is empty.
type logSender struct {
	logger *logger.Logger
}

func NewLogSender(log *logger.Logger) Sender {
	return &logSender{logger: log}
}

func (s *logSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("[EMAIL] simulated send to=%s subject=%q", msg.To, msg.Subject)
	return nil
}

// NewSender picks Resend when an API key is configured.
func NewSender(apiKey, fromEmail string, log *logger.Logger) Sender {
	if apiKey == "" {
		log.Warn("RESEND_API_KEY is empty, campaign emails will be simulated")
		return NewLogSender(log)
	}
	return NewResendSender(apiKey, fromEmail)
}

// UnsubscribeURL is the link appended to every campaign email.
func UnsubscribeURL(siteURL, email, locale string) string {
	q := url.Values{}
	q.Set("email", email)
	if locale != "" {
		q.Set("lang", locale)
	}
	return fmt.Sprintf("%s/newsletter/unsubscribe?%s", siteURL, q.Encode())
}

// CampaignHTML wraps campaign content with a direction-aware layout and an
// unsubscribe footer.
func CampaignHTML(content, unsubscribeURL, locale string) string {
	dir, footer := "rtl", "لإلغاء الاشتراك"
	if locale == "en" {
		dir, footer = "ltr", "Unsubscribe"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html dir="%s" lang="%s">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:24px;font-family:Tahoma,Arial,sans-serif;background-color:#f8fafc;">
  <div style="max-width:600px;margin:0 auto;background-color:#ffffff;border-radius:8px;padding:32px;">
    %s
    <p style="color:#94a3b8;font-size:12px;margin-top:32px;">
      <a href="%s" style="color:#64748b;">%s</a>
    </p>
  </div>
</body>
</html>`, dir, localeOrDefault(locale), content, unsubscribeURL, footer)
}

func localeOrDefault(locale string) string {
	if locale == "" {
		return "ar"
	}
	return locale
}
