package registrant

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
)

type Email struct {
	FromAddress string
	ToAddresses []string
	Subject     string
	HTMLBody    string
	TextBody    string
}

type EmailSender interface {
	SendEmail(ctx context.Context, e Email) error
}

//go:embed templates
var templates embed.FS

// SendPaymentConfirmationEmail tells a registrant their payment proof was
// received. Callers treat a failure here as non-fatal; the upload already
// succeeded by the time this runs.
func SendPaymentConfirmationEmail(ctx context.Context, sender EmailSender, fromAddress string, reg Registrant) error {
	htmlBody, err := makeHtmlBody(reg)
	if err != nil {
		return err
	}

	textOnlyBody, err := makeTextOnlyBody(reg)
	if err != nil {
		return err
	}

	return sender.SendEmail(ctx, Email{
		FromAddress: fromAddress,
		ToAddresses: []string{reg.Email},
		Subject:     "Payment received - registration confirmed",
		HTMLBody:    htmlBody,
		TextBody:    textOnlyBody,
	})
}

func makeHtmlBody(reg Registrant) (string, error) {
	tmpl, err := template.ParseFS(templates, "templates/payment-confirmation.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, reg)
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return buf.String(), nil
}

func makeTextOnlyBody(reg Registrant) (string, error) {
	tmpl, err := template.ParseFS(templates, "templates/payment-confirmation-textonly.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, reg)
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return buf.String(), nil
}
