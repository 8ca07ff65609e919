package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/technovate-fest/event-registration/registrant"
)

// registrantView is the sanitized record shape sent to clients. Versioning
// and store key attributes never leave the process.
type registrantView struct {
	Id                  string    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	Qualification       string    `json:"qualification"`
	SchoolOrCollegeName string    `json:"schoolOrCollegeName"`
	PaymentScreenshot   string    `json:"paymentScreenshot"`
	Status              string    `json:"status"`
	RegisteredAt        time.Time `json:"registeredAt"`
}

func registrantToView(reg registrant.Registrant) registrantView {
	return registrantView{
		Id:                  reg.ID.String(),
		Name:                reg.Name,
		Email:               reg.Email,
		Phone:               reg.Phone,
		Qualification:       reg.Qualification,
		SchoolOrCollegeName: reg.SchoolOrCollegeName,
		PaymentScreenshot:   reg.PaymentScreenshot,
		Status:              string(reg.Status),
		RegisteredAt:        reg.RegisteredAt,
	}
}

type registrationCreatedData struct {
	Id           string    `json:"id"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type registrationCreatedResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Data    registrationCreatedData `json:"data"`
}

type registrationListResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Data    []registrantView `json:"data"`
}

type uploadData struct {
	Email      string `json:"email"`
	Status     string `json:"status"`
	Screenshot string `json:"screenshot"`
}

type uploadResponse struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message"`
	Data         uploadData `json:"data"`
	WhatsappLink string     `json:"whatsappLink"`
}

type validationErrorResponse struct {
	Error    string          `json:"error"`
	Details  []string        `json:"details"`
	Received json.RawMessage `json:"received,omitempty"`
}

type duplicateEmailResponse struct {
	Error          string `json:"error"`
	DuplicateEmail string `json:"duplicateEmail"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// usersErrorResponse carries its detail under "message" rather than
// "details", matching the admin dump's historical shape.
type usersErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

func (a *API) writeJSON(w http.ResponseWriter, statusCode int, body any) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		a.logger.Error("Failed to marshal response body", "error", err)
		jsonBody = []byte(`{"error":"Internal Server Error"}`)
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(jsonBody)
}

// writeServerError gates the underlying detail behind the local environment.
func (a *API) writeServerError(w http.ResponseWriter, message string, err error) {
	resp := errorResponse{Error: message}
	if a.env == LOCAL && err != nil {
		resp.Details = err.Error()
	}

	a.writeJSON(w, http.StatusInternalServerError, resp)
}
