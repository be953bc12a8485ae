package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/config"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// Notifier delivers workflow outcome emails. Callers treat delivery as
// best-effort: the triggering state change has already committed by the
// time a notification goes out.
type Notifier interface {
	SendLeaveStatus(to, employeeName, leaveType, status string, comments *string) error
	SendPayrollProcessed(to, employeeName, monthName string, year int, netSalary decimal.Decimal) error
}

type emailServiceImpl struct {
	cfg         config.SMTPConfig
	frontendURL string
	templates   *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig, frontendURL string) (Notifier, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:         cfg,
		frontendURL: frontendURL,
		templates:   tmpl,
	}, nil
}

type leaveStatusEmailData struct {
	EmployeeName string
	LeaveType    string
	StatusText   string
	StatusColor  string
	Comments     string
	DashboardURL string
}

// SendLeaveStatus notifies an employee that their leave request was
// approved or rejected.
func (s *emailServiceImpl) SendLeaveStatus(to, employeeName, leaveType, status string, comments *string) error {
	statusText := "Rejected"
	color := "#EF4444"
	if status == "approved" {
		statusText = "Approved"
		color = "#10B981"
	}

	data := leaveStatusEmailData{
		EmployeeName: employeeName,
		LeaveType:    leaveType,
		StatusText:   statusText,
		StatusColor:  color,
		DashboardURL: s.frontendURL + "/dashboard",
	}
	if comments != nil {
		data.Comments = *comments
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_status.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Leave Request %s", statusText), body.String())
}

type payrollEmailData struct {
	EmployeeName string
	Month        string
	Year         int
	NetSalary    string
	PayrollURL   string
}

// SendPayrollProcessed notifies an employee that their payroll for the
// period has been generated.
func (s *emailServiceImpl) SendPayrollProcessed(to, employeeName, monthName string, year int, netSalary decimal.Decimal) error {
	data := payrollEmailData{
		EmployeeName: employeeName,
		Month:        monthName,
		Year:         year,
		NetSalary:    netSalary.StringFixed(2),
		PayrollURL:   s.frontendURL + "/payroll",
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "payroll_processed.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Payroll Processed - %s %d", monthName, year), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
