package registrant

import (
	"context"
	"fmt"
	"log/slog"
)

// MaxArtifactSize is the cap on an uploaded payment screenshot, in bytes.
const MaxArtifactSize = 5 << 20

// Upload is a payment screenshot as received from the client, fully buffered
// so it can be validated before anything touches durable storage.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ArtifactStore holds payment screenshots. Store returns a public reference
// that is later written onto the registrant record; Remove takes that same
// reference back for compensating deletes.
type ArtifactStore interface {
	Store(ctx context.Context, upload Upload) (string, error)
	Remove(ctx context.Context, ref string) error
}

var allowedArtifactTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

func validateArtifact(upload Upload) *Error {
	if len(upload.Data) == 0 {
		return NewMissingArtifactError()
	}
	if _, ok := allowedArtifactTypes[upload.ContentType]; !ok {
		return NewUnsupportedArtifactTypeError(upload.ContentType)
	}
	if len(upload.Data) > MaxArtifactSize {
		return NewArtifactTooLargeError(int64(len(upload.Data)))
	}

	return nil
}

// AttachPayment stores a payment screenshot and advances the owning
// registrant to CONFIRMED. The artifact is validated before any bytes are
// written, then accepted onto storage, and only then is the owner looked up:
// if the conditional update finds no registrant (or fails outright), the
// just-written artifact is removed again so nothing orphaned stays on disk.
// A failed compensating delete is logged and does not change the outcome.
func AttachPayment(ctx context.Context, logger *slog.Logger, email string, upload Upload, repo Repository, artifacts ArtifactStore) (Registrant, error) {
	email = NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return Registrant{}, NewValidationError([]string{"Please provide a valid email address"})
	}

	if err := validateArtifact(upload); err != nil {
		return Registrant{}, err
	}

	ref, err := artifacts.Store(ctx, upload)
	if err != nil {
		return Registrant{}, NewFailedToStoreArtifactError(fmt.Sprintf("Failed to store payment screenshot for %q", email), err)
	}

	updated, err := repo.AttachPaymentEvidence(ctx, email, ref)
	if err != nil {
		if rmErr := artifacts.Remove(ctx, ref); rmErr != nil {
			logger.Error("Failed to clean up orphaned payment screenshot",
				slog.String("ref", ref),
				slog.String("error", rmErr.Error()),
			)
		}
		return Registrant{}, err
	}

	return updated, nil
}
