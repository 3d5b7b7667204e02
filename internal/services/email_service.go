package services

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"workboard/internal/models"
)

type EmailService interface {
	SendUnpaidSummary(email string, rows []ClientUnpaid) error
}

// ClientUnpaid pairs a client with its current board aggregate.
type ClientUnpaid struct {
	Client models.Client     `json:"client"`
	Counts models.TaskCounts `json:"counts"`
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendUnpaidSummary(email string, rows []ClientUnpaid) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Unpaid work summary")

	var b strings.Builder
	b.WriteString("<h2>Unpaid work summary</h2>")
	totalUnpaid := 0
	for _, row := range rows {
		if row.Counts.UnpaidCompleted == 0 {
			continue
		}
		totalUnpaid += row.Counts.UnpaidCompleted
		fmt.Fprintf(&b, "<p><strong>%s</strong>: %d completed item(s) awaiting payment (%d completed in total)</p>",
			row.Client.Name, row.Counts.UnpaidCompleted, row.Counts.Completed)
	}
	if totalUnpaid == 0 {
		b.WriteString("<p>Nothing outstanding. All completed work has been paid.</p>")
	}

	m.SetBody("text/html", b.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send unpaid summary email: %w", err)
	}

	return nil
}
