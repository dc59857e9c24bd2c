package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

func smtpDialer() *gomail.Dialer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	return gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
	)
}

// SendEmail sends an HTML email via the configured SMTP server.
func SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := smtpDialer().DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendRefundDecisionEmail notifies a buyer that their refund request was
// adjudicated.
func SendRefundDecisionEmail(to, amount string, approved bool) error {
	subject := "Your refund request was rejected"
	body := fmt.Sprintf(`
		<h2>Refund request update</h2>
		<p>Your refund request for $%s has been reviewed and rejected.</p>
		<p>Reply to this email if you believe this decision is wrong.</p>
	`, amount)
	if approved {
		subject = "Your refund has been approved"
		body = fmt.Sprintf(`
			<h2>Refund approved</h2>
			<p>Your refund request has been approved and $%s has been credited back to your balance.</p>
		`, amount)
	}
	return SendEmail(to, subject, body)
}
