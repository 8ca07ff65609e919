package api

import (
	"context"
	"log/slog"

	"github.com/technovate-fest/event-registration/registrant"
)

var noopLogger = slog.New(slog.DiscardHandler)

var _ DB = &mockDB{}

type mockDB struct {
	CreateRegistrantFunc      func(ctx context.Context, reg registrant.Registrant) error
	GetRegistrantFunc         func(ctx context.Context, email string) (registrant.Registrant, error)
	AttachPaymentEvidenceFunc func(ctx context.Context, email string, screenshotRef string) (registrant.Registrant, error)
	ListRegistrantsFunc       func(ctx context.Context) ([]registrant.Registrant, error)
	PingFunc                  func(ctx context.Context) error
}

func (m *mockDB) CreateRegistrant(ctx context.Context, reg registrant.Registrant) error {
	if m.CreateRegistrantFunc != nil {
		return m.CreateRegistrantFunc(ctx, reg)
	}
	return nil
}

func (m *mockDB) GetRegistrant(ctx context.Context, email string) (registrant.Registrant, error) {
	if m.GetRegistrantFunc != nil {
		return m.GetRegistrantFunc(ctx, email)
	}
	return registrant.Registrant{}, nil
}

func (m *mockDB) AttachPaymentEvidence(ctx context.Context, email string, screenshotRef string) (registrant.Registrant, error) {
	if m.AttachPaymentEvidenceFunc != nil {
		return m.AttachPaymentEvidenceFunc(ctx, email, screenshotRef)
	}
	return registrant.Registrant{
		Email:             email,
		Status:            registrant.CONFIRMED,
		PaymentScreenshot: screenshotRef,
	}, nil
}

func (m *mockDB) ListRegistrants(ctx context.Context) ([]registrant.Registrant, error) {
	if m.ListRegistrantsFunc != nil {
		return m.ListRegistrantsFunc(ctx)
	}
	return nil, nil
}

func (m *mockDB) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

var _ registrant.ArtifactStore = &mockArtifactStore{}

type mockArtifactStore struct {
	StoreFunc func(ctx context.Context, upload registrant.Upload) (string, error)

	storedUploads []registrant.Upload
	removedRefs   []string
}

func (m *mockArtifactStore) Store(ctx context.Context, upload registrant.Upload) (string, error) {
	m.storedUploads = append(m.storedUploads, upload)
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, upload)
	}
	return "/uploads/stored-screenshot.png", nil
}

func (m *mockArtifactStore) Remove(ctx context.Context, ref string) error {
	m.removedRefs = append(m.removedRefs, ref)
	return nil
}

var _ registrant.EmailSender = &mockEmailSender{}

type mockEmailSender struct {
	SendEmailFunc func(ctx context.Context, e registrant.Email) error

	sentEmails []registrant.Email
}

func (m *mockEmailSender) SendEmail(ctx context.Context, e registrant.Email) error {
	m.sentEmails = append(m.sentEmails, e)
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, e)
	}
	return nil
}

func newTestAPI(db *mockDB, artifacts *mockArtifactStore, sender *mockEmailSender, uploadsDir string) *API {
	return NewAPI(db, artifacts, sender, noopLogger, LOCAL, Config{
		UploadsDir:       uploadsDir,
		WhatsAppLink:     "https://chat.whatsapp.com/test-group",
		EmailFromAddress: "Technovate <info@technovate.example>",
	})
}
