package registrant

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateRegistrant(ctx context.Context, reg Registrant) error
	GetRegistrant(ctx context.Context, email string) (Registrant, error)
	AttachPaymentEvidence(ctx context.Context, email string, screenshotRef string) (Registrant, error)
	ListRegistrants(ctx context.Context) ([]Registrant, error)
}

type Status string

const (
	PENDING   Status = "pending"
	CONFIRMED Status = "confirmed"
	// Reserved terminal state, never written by any operation here.
	CANCELLED Status = "cancelled"
)

type Registrant struct {
	ID                  uuid.UUID
	Version             int
	Name                string
	Email               string
	Phone               string
	Qualification       string
	SchoolOrCollegeName string
	PaymentScreenshot   string
	Status              Status
	RegisteredAt        time.Time
}

// Input is the raw, untrusted field set from a sign-up request.
type Input struct {
	Name                string
	Email               string
	Phone               string
	Qualification       string
	SchoolOrCollegeName string
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (in Input) normalize() Input {
	return Input{
		Name:                strings.TrimSpace(in.Name),
		Email:               NormalizeEmail(in.Email),
		Phone:               strings.TrimSpace(in.Phone),
		Qualification:       strings.TrimSpace(in.Qualification),
		SchoolOrCollegeName: strings.TrimSpace(in.SchoolOrCollegeName),
	}
}

// validate assumes in is already normalized.
func (in Input) validate() []string {
	var details []string

	if in.Name == "" {
		details = append(details, "Name is required")
	}
	if in.Email == "" {
		details = append(details, "Email is required")
	} else if !emailPattern.MatchString(in.Email) {
		details = append(details, "Please provide a valid email address")
	}
	if in.Phone == "" {
		details = append(details, "Phone number is required")
	} else if !phonePattern.MatchString(in.Phone) {
		details = append(details, "Please provide a valid 10-digit phone number")
	}
	if in.Qualification == "" {
		details = append(details, "Qualification is required")
	}
	if in.SchoolOrCollegeName == "" {
		details = append(details, "School or college name is required")
	}

	return details
}

// Register validates and persists a new registrant. New registrants always
// start in PENDING with no payment screenshot; only AttachPayment moves them
// forward.
func Register(ctx context.Context, in Input, repo Repository) (Registrant, error) {
	in = in.normalize()

	if details := in.validate(); len(details) > 0 {
		return Registrant{}, NewValidationError(details)
	}

	reg := Registrant{
		ID:                  uuid.New(),
		Version:             1,
		Name:                in.Name,
		Email:               in.Email,
		Phone:               in.Phone,
		Qualification:       in.Qualification,
		SchoolOrCollegeName: in.SchoolOrCollegeName,
		PaymentScreenshot:   "",
		Status:              PENDING,
		RegisteredAt:        time.Now().UTC(),
	}

	err := repo.CreateRegistrant(ctx, reg)
	if err != nil {
		return Registrant{}, err
	}

	return reg, nil
}

// ListAll returns every registrant, most recently registered first.
func ListAll(ctx context.Context, repo Repository) ([]Registrant, error) {
	return repo.ListRegistrants(ctx)
}
