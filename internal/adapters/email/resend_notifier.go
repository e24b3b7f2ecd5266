// Package email sends the transactional emails of the reimbursement workflow.
package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/middleware"
	"github.com/resend/resend-go/v2"
)

const defaultFrom = "NexKeep <noreply@resend.dev>"

// placeholderAPIKey is the sample key shipped in example env files; it is treated as unset.
const placeholderAPIKey = "re_test_xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"

// Sender is the part of the Resend client used here.
type Sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendNotifier delivers notices through Resend.
type ResendNotifier struct {
	sender Sender
	from   string
}

var _ portssvc.Notifier = (*ResendNotifier)(nil)

// NewNotifier returns a Resend backed notifier, or a LogNotifier when apiKey is empty.
func NewNotifier(apiKey, from string) portssvc.Notifier {
	if apiKey == "" || apiKey == placeholderAPIKey {
		return LogNotifier{}
	}
	return NewResendNotifier(resend.NewClient(apiKey).Emails, from)
}

func NewResendNotifier(sender Sender, from string) *ResendNotifier {
	if from == "" {
		from = defaultFrom
	}
	return &ResendNotifier{sender: sender, from: from}
}

func (n *ResendNotifier) SendReimbursementConfirmation(ctx context.Context, notice domain.ReimbursementNotice) error {
	if notice.RequesterEmail == "" {
		return errors.New("requester email is empty")
	}
	body, err := render(confirmationTmpl, notice)
	if err != nil {
		return err
	}
	return n.send(ctx, notice.RequesterEmail, "Confirmation de votre demande de remboursement", body)
}

func (n *ResendNotifier) SendOwnerNotification(ctx context.Context, notice domain.ReimbursementNotice) error {
	if notice.OwnerEmail == "" {
		return errors.New("owner email is empty")
	}
	body, err := render(ownerTmpl, notice)
	if err != nil {
		return err
	}
	subject := "Nouvelle demande de remboursement pour votre budget - " + notice.RequesterName
	return n.send(ctx, notice.OwnerEmail, subject, body)
}

func (n *ResendNotifier) send(ctx context.Context, to, subject, html string) error {
	sent, err := n.sender.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Email sent", slog.String("email_id", sent.Id), slog.String("subject", subject))
	return nil
}

// LogNotifier only logs notices. It is used when no email provider is configured.
type LogNotifier struct{}

var _ portssvc.Notifier = LogNotifier{}

func (LogNotifier) SendReimbursementConfirmation(ctx context.Context, notice domain.ReimbursementNotice) error {
	middleware.GetLoggerFromCtx(ctx).Info("Email provider not configured, confirmation not sent",
		slog.String("request_id", notice.RequestID), slog.String("to", notice.RequesterEmail))
	return nil
}

func (LogNotifier) SendOwnerNotification(ctx context.Context, notice domain.ReimbursementNotice) error {
	middleware.GetLoggerFromCtx(ctx).Info("Email provider not configured, owner notification not sent",
		slog.String("request_id", notice.RequestID), slog.String("amount", notice.Amount.StringFixed(2)))
	return nil
}

func render(t *template.Template, notice domain.ReimbursementNotice) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, notice); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="font-size: 24px;">NexKeep</h1>
  <h2 style="font-size: 18px;">Bonjour {{.RequesterName}},</h2>
  <p>Votre demande de remboursement a été enregistrée avec succès.<br>
  <strong>Référence : {{.RequestID}}</strong></p>
  <ul>
    <li>Vérification de votre demande (2-3 jours ouvrés)</li>
    <li>Validation des documents fournis</li>
    <li>Effectuation du remboursement</li>
    <li>Notification de paiement</li>
  </ul>
  <p>Pour toute question, contactez-nous en mentionnant votre référence : {{.RequestID}}</p>
  <p style="font-size: 12px; color: #71717a;">Email automatique - NexKeep</p>
</div>`))

var ownerTmpl = template.Must(template.New("owner").Parse(`
<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="font-size: 24px;">NexKeep</h1>
  <h2 style="font-size: 18px;">Nouvelle demande reçue</h2>
  <p>Cette demande concerne votre budget personnel.</p>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td>Nom</td><td>{{.RequesterName}}</td></tr>
    <tr><td>Email</td><td>{{.RequesterEmail}}</td></tr>
    <tr><td>Montant</td><td>{{.Amount.StringFixed 2}} €</td></tr>
    <tr><td>Description</td><td>{{.Description}}</td></tr>
    <tr><td>Date</td><td>{{.SubmittedAt.Format "02/01/2006 15:04"}}</td></tr>
    <tr><td>Référence</td><td>{{.RequestID}}</td></tr>
  </table>
</div>`))
