package main

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/technovate-fest/event-registration/api"
	"github.com/technovate-fest/event-registration/registrant"
)

var _ registrant.EmailSender = &emailLogger{}

// registrant.EmailSender that logs out the email contents for local dev.
type emailLogger struct {
	logger *slog.Logger
}

func (el *emailLogger) SendEmail(ctx context.Context, e registrant.Email) error {
	el.logger.Info("email that would be sent",
		slog.String("to", e.ToAddresses[0]),
		slog.String("subject", e.Subject),
		slog.String("body", e.TextBody),
	)

	return nil
}

var _ registrant.EmailSender = &sesEmailSender{}

type sesEmailSender struct {
	client *sesv2.Client
}

func (s *sesEmailSender) SendEmail(ctx context.Context, e registrant.Email) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(e.FromAddress),
		Destination: &sestypes.Destination{
			ToAddresses: e.ToAddresses,
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(e.Subject)},
				Body: &sestypes.Body{
					Html: &sestypes.Content{Data: aws.String(e.HTMLBody)},
					Text: &sestypes.Content{Data: aws.String(e.TextBody)},
				},
			},
		},
	})

	return err
}

func createEmailSender(ctx context.Context, logger *slog.Logger, env api.Environment) (registrant.EmailSender, error) {
	if env == api.LOCAL {
		return &emailLogger{logger: logger}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &sesEmailSender{client: sesv2.NewFromConfig(awsCfg)}, nil
}
