package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/technovate-fest/event-registration/registrant"
	"github.com/technovate-fest/event-registration/slices"
)

type registrationRequest struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Qualification       string `json:"qualification"`
	SchoolOrCollegeName string `json:"schoolOrCollegeName"`
}

const maxRegistrationBodyBytes = 64 << 10

func (a *API) postRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := a.getLoggerOrBaseLogger(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxRegistrationBodyBytes)
	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Warn("Failed to read registration body", "error", err)

		a.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
			Error:   "Validation failed",
			Details: []string{"Request body could not be read"},
		})
		return
	}

	var req registrationRequest
	err = json.Unmarshal(rawBody, &req)
	if err != nil {
		logger.Warn("Invalid JSON body for registration", "error", err)

		a.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
			Error:   "Validation failed",
			Details: []string{"Request body must be valid JSON"},
		})
		return
	}

	reg, err := registrant.Register(ctx, registrant.Input{
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		Qualification:       req.Qualification,
		SchoolOrCollegeName: req.SchoolOrCollegeName,
	}, a.db)
	if err != nil {
		var regErr *registrant.Error
		if errors.As(err, &regErr) {
			switch regErr.Reason {
			case registrant.REASON_VALIDATION_FAILED:
				logger.Warn("Registration rejected", "details", regErr.Details)

				a.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
					Error:    "Validation failed",
					Details:  regErr.Details,
					Received: json.RawMessage(rawBody),
				})
				return
			case registrant.REASON_DUPLICATE_EMAIL:
				logger.Warn("Duplicate registration attempt", "email", registrant.NormalizeEmail(req.Email))

				a.writeJSON(w, http.StatusConflict, duplicateEmailResponse{
					Error:          "Email already registered",
					DuplicateEmail: registrant.NormalizeEmail(req.Email),
				})
				return
			}
		}

		logger.Error("Error trying to register", "error", err)
		a.writeServerError(w, "Registration failed", err)
		return
	}

	a.writeJSON(w, http.StatusCreated, registrationCreatedResponse{
		Success: true,
		Message: "Registration successful",
		Data: registrationCreatedData{
			Id:           reg.ID.String(),
			Email:        reg.Email,
			Status:       string(reg.Status),
			RegisteredAt: reg.RegisteredAt,
		},
	})
}

func (a *API) getAllRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := a.getLoggerOrBaseLogger(ctx)

	regs, err := registrant.ListAll(ctx, a.db)
	if err != nil {
		logger.Error("Failed to get registrations", "error", err)

		a.writeServerError(w, "Failed to fetch registrations", err)
		return
	}

	a.writeJSON(w, http.StatusOK, registrationListResponse{
		Success: true,
		Count:   len(regs),
		Data:    slices.Map(regs, registrantToView),
	})
}

// getUsers is the raw administrative dump: a bare array, no envelope.
func (a *API) getUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := a.getLoggerOrBaseLogger(ctx)

	regs, err := registrant.ListAll(ctx, a.db)
	if err != nil {
		logger.Error("Failed to fetch users", "error", err)

		resp := usersErrorResponse{Error: "Failed to fetch users"}
		if a.env == LOCAL {
			resp.Message = err.Error()
		}
		a.writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	a.writeJSON(w, http.StatusOK, slices.Map(regs, registrantToView))
}
