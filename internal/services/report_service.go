package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workboard/internal/models"
	"workboard/internal/pdf"
	"workboard/internal/repositories"
)

// ReportService builds billing views over a user's boards.
type ReportService struct {
	clients *repositories.ClientRepository
	tasks   repositories.TaskRepository
	emails  EmailService
	pdfGen  pdf.Generator
}

func NewReportService(clients *repositories.ClientRepository, tasks repositories.TaskRepository, emails EmailService, pdfGen pdf.Generator) *ReportService {
	return &ReportService{clients: clients, tasks: tasks, emails: emails, pdfGen: pdfGen}
}

// UnpaidSummary returns every client of the user with its current counts.
func (s *ReportService) UnpaidSummary(ctx context.Context, userID int64) ([]ClientUnpaid, error) {
	clients, err := s.clients.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows := make([]ClientUnpaid, 0, len(clients))
	for _, c := range clients {
		tasks, err := s.tasks.FindAll(ctx, models.TaskFilter{ClientID: &c.ID})
		if err != nil {
			return nil, err
		}
		rows = append(rows, ClientUnpaid{Client: *c, Counts: ComputeCounts(tasks)})
	}
	return rows, nil
}

// Statement renders a PDF of the client's completed work and returns the
// file path.
func (s *ReportService) Statement(ctx context.Context, userID, clientID int64) (string, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return "", err
	}
	if client == nil || client.UserID != userID {
		return "", errors.New("client not found")
	}

	completed := models.StatusCompleted
	tasks, err := s.tasks.FindAll(ctx, models.TaskFilter{ClientID: &clientID, Status: &completed})
	if err != nil {
		return "", err
	}

	lines := make([]pdf.StatementLine, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, pdf.StatementLine{
			Description: t.Description,
			DueDate:     t.DueDate,
			Paid:        t.Paid,
		})
	}

	now := time.Now()
	return s.pdfGen.GenerateStatement(pdf.StatementData{
		ClientName:  client.Name,
		GeneratedAt: now,
		Lines:       lines,
		Filename:    fmt.Sprintf("statement_client_%d_%s.pdf", client.ID, now.Format("20060102")),
	})
}

// EmailUnpaidSummary mails the current unpaid summary to the given address.
func (s *ReportService) EmailUnpaidSummary(ctx context.Context, userID int64, to string) error {
	rows, err := s.UnpaidSummary(ctx, userID)
	if err != nil {
		return err
	}
	return s.emails.SendUnpaidSummary(to, rows)
}
