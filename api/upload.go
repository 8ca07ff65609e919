package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/technovate-fest/event-registration/registrant"
)

// Multipart overhead on top of the artifact itself.
const maxUploadBodyBytes = registrant.MaxArtifactSize + (1 << 20)

func (a *API) postUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := a.getLoggerOrBaseLogger(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodyBytes)

	err := r.ParseMultipartForm(32 << 20)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			logger.Warn("Upload body over size limit")

			a.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error: "Screenshot exceeds the 5MB limit",
			})
			return
		}

		logger.Warn("Failed to parse multipart form", "error", err)

		a.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "Missing required fields (email or screenshot)",
		})
		return
	}

	file, header, err := r.FormFile("screenshot")
	if err != nil {
		logger.Warn("Upload missing screenshot file")

		a.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "Missing required fields (email or screenshot)",
		})
		return
	}
	defer file.Close()

	email := r.FormValue("email")
	if email == "" {
		logger.Warn("Upload missing email field")

		a.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "Missing required fields (email or screenshot)",
		})
		return
	}

	// Buffer one byte past the cap so the size check can fail without any
	// bytes having reached durable storage.
	data, err := io.ReadAll(io.LimitReader(file, registrant.MaxArtifactSize+1))
	if err != nil {
		logger.Error("Failed to read uploaded screenshot", "error", err)

		a.writeServerError(w, "Failed to process payment", err)
		return
	}

	updated, err := registrant.AttachPayment(ctx, logger, email, registrant.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, a.db, a.artifacts)
	if err != nil {
		var regErr *registrant.Error
		if errors.As(err, &regErr) {
			switch regErr.Reason {
			case registrant.REASON_VALIDATION_FAILED:
				logger.Warn("Upload with invalid email", "email", email)

				a.writeJSON(w, http.StatusBadRequest, errorResponse{
					Error: "Please provide a valid email address",
				})
				return
			case registrant.REASON_MISSING_ARTIFACT:
				a.writeJSON(w, http.StatusBadRequest, errorResponse{
					Error: "Missing required fields (email or screenshot)",
				})
				return
			case registrant.REASON_UNSUPPORTED_ARTIFACT_TYPE:
				logger.Warn("Upload with unsupported content type", "content-type", header.Header.Get("Content-Type"))

				a.writeJSON(w, http.StatusBadRequest, errorResponse{
					Error: "Only .jpg, .jpeg, and .png files are allowed",
				})
				return
			case registrant.REASON_ARTIFACT_TOO_LARGE:
				logger.Warn("Upload over size limit", "email", email)

				a.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
					Error: "Screenshot exceeds the 5MB limit",
				})
				return
			case registrant.REASON_REGISTRANT_DOES_NOT_EXIST:
				logger.Warn("Upload for unregistered email", "email", registrant.NormalizeEmail(email))

				a.writeJSON(w, http.StatusNotFound, errorResponse{
					Error: "User not found",
				})
				return
			}
		}

		logger.Error("Payment upload failed", "error", err)
		a.writeServerError(w, "Failed to process payment", err)
		return
	}

	a.sendConfirmationEmail(ctx, updated)

	a.writeJSON(w, http.StatusOK, uploadResponse{
		Success: true,
		Message: "Payment proof uploaded successfully.",
		Data: uploadData{
			Email:      updated.Email,
			Status:     string(updated.Status),
			Screenshot: updated.PaymentScreenshot,
		},
		WhatsappLink: a.cfg.WhatsAppLink,
	})
}

// sendConfirmationEmail is best-effort: the payment evidence is already
// durably attached, so a failed email never changes the response.
func (a *API) sendConfirmationEmail(ctx context.Context, reg registrant.Registrant) {
	if a.emailSender == nil || a.cfg.EmailFromAddress == "" {
		return
	}

	err := registrant.SendPaymentConfirmationEmail(ctx, a.emailSender, a.cfg.EmailFromAddress, reg)
	if err != nil {
		a.getLoggerOrBaseLogger(ctx).Error("Failed to send payment confirmation email",
			"error", err,
			"email", reg.Email,
		)
	}
}
