package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Login is the sign-in form.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up form.
type Registration struct {
	Email                 string `json:"email" validate:"required,email"`
	Password              string `json:"password" validate:"required,min=6"`
	PasswordConfirm       string `json:"password_confirm" validate:"required,eqfield=Password"`
	FirstName             string `json:"first_name" validate:"required"`
	LastName              string `json:"last_name" validate:"required"`
	Phone                 string `json:"phone,omitempty" validate:"omitempty,max=20"`
	BelongsToOrganization bool   `json:"belongs_to_organization"`
	RequestedRole         string `json:"requested_role,omitempty" validate:"omitempty,oneof=station_admin researcher institution_head citizen"`
	InstitutionID         int64  `json:"institution_id,omitempty" validate:"omitempty,gt=0"`
}

// Payload returns the registration body sent to the API.
func (r Registration) Payload() map[string]any {
	body := map[string]any{
		"email":                   r.Email,
		"password":                r.Password,
		"password_confirm":        r.PasswordConfirm,
		"first_name":              r.FirstName,
		"last_name":               r.LastName,
		"belongs_to_organization": r.BelongsToOrganization,
	}
	if r.Phone != "" {
		body["phone"] = r.Phone
	}
	if r.RequestedRole != "" {
		body["requested_role"] = r.RequestedRole
	}
	if r.InstitutionID != 0 {
		body["institution_id"] = r.InstitutionID
	}
	return body
}

// MaintenanceLog is the sensor maintenance form. Certificate is an optional
// local file attached to the request.
type MaintenanceLog struct {
	SensorID    int64  `validate:"required,gt=0"`
	Date        string `validate:"required,datetime=2006-01-02"`
	Description string `validate:"required,min=3"`
	Certificate string `validate:"omitempty,file"`
}

// StationRegistration is the station registration-request form.
type StationRegistration struct {
	Name          string  `validate:"required"`
	Location      string  `validate:"required"`
	InstitutionID int64   `validate:"required,gt=0"`
	Latitude      float64 `validate:"omitempty,latitude"`
	Longitude     float64 `validate:"omitempty,longitude"`
	Certificate   string  `validate:"omitempty,file"`
}

// Institution is the institution registration form.
type Institution struct {
	Name               string `validate:"required"`
	NIT                string `validate:"required"`
	Address            string `validate:"required"`
	City               string
	RepresentativeName string
	Email              string `validate:"omitempty,email"`
	Phone              string `validate:"omitempty,max=20"`
	Documentation      string `validate:"omitempty,file"`
}

// Review is the accept/reject form used by affiliation and registration reviews.
type Review struct {
	Status   string `validate:"required,oneof=ACCEPTED REJECTED"`
	Comments string `validate:"max=500"`
}

// ReportRange is a date window for report queries.
type ReportRange struct {
	StartDate string `validate:"required,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
}

// NormalizeReviewStatus maps user input such as "accept" or "rejected" to the
// status values the API expects.
func NormalizeReviewStatus(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACCEPT", "ACCEPTED", "APPROVE", "APPROVED":
		return sdk.ReviewAccepted
	case "REJECT", "REJECTED", "DENY", "DENIED":
		return sdk.ReviewRejected
	default:
		return strings.ToUpper(strings.TrimSpace(s))
	}
}

// Validate checks a form and returns one readable error listing every invalid
// field.
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "file":
		return fmt.Sprintf("%s must point to an existing file", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "latitude", "longitude":
		return fmt.Sprintf("%s must be a valid %s", field, fe.Tag())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
