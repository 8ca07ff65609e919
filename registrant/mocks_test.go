package registrant

import (
	"context"
	"log/slog"
)

var noopLogger = slog.New(slog.DiscardHandler)

var _ Repository = &mockRepository{}

type mockRepository struct {
	CreateRegistrantFunc      func(ctx context.Context, reg Registrant) error
	GetRegistrantFunc         func(ctx context.Context, email string) (Registrant, error)
	AttachPaymentEvidenceFunc func(ctx context.Context, email string, screenshotRef string) (Registrant, error)
	ListRegistrantsFunc       func(ctx context.Context) ([]Registrant, error)
}

func (m *mockRepository) CreateRegistrant(ctx context.Context, reg Registrant) error {
	if m.CreateRegistrantFunc != nil {
		return m.CreateRegistrantFunc(ctx, reg)
	}
	return nil
}

func (m *mockRepository) GetRegistrant(ctx context.Context, email string) (Registrant, error) {
	if m.GetRegistrantFunc != nil {
		return m.GetRegistrantFunc(ctx, email)
	}
	return Registrant{}, nil
}

func (m *mockRepository) AttachPaymentEvidence(ctx context.Context, email string, screenshotRef string) (Registrant, error) {
	if m.AttachPaymentEvidenceFunc != nil {
		return m.AttachPaymentEvidenceFunc(ctx, email, screenshotRef)
	}
	return Registrant{}, nil
}

func (m *mockRepository) ListRegistrants(ctx context.Context) ([]Registrant, error) {
	if m.ListRegistrantsFunc != nil {
		return m.ListRegistrantsFunc(ctx)
	}
	return nil, nil
}

var _ ArtifactStore = &mockArtifactStore{}

type mockArtifactStore struct {
	StoreFunc  func(ctx context.Context, upload Upload) (string, error)
	RemoveFunc func(ctx context.Context, ref string) error

	storedRefs  []string
	removedRefs []string
}

func (m *mockArtifactStore) Store(ctx context.Context, upload Upload) (string, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, upload)
	}
	ref := "/uploads/stored-screenshot.png"
	m.storedRefs = append(m.storedRefs, ref)
	return ref, nil
}

func (m *mockArtifactStore) Remove(ctx context.Context, ref string) error {
	m.removedRefs = append(m.removedRefs, ref)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, ref)
	}
	return nil
}

var _ EmailSender = &mockEmailSender{}

type mockEmailSender struct {
	SendEmailFunc func(ctx context.Context, e Email) error

	sentEmails []Email
}

func (m *mockEmailSender) SendEmail(ctx context.Context, e Email) error {
	m.sentEmails = append(m.sentEmails, e)
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, e)
	}
	return nil
}
