package forms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Login(t *testing.T) {
	require.NoError(t, Validate(Login{Email: "ana@vrisa.co", Password: "x"}))

	err := Validate(Login{Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email must be a valid email address")
	assert.Contains(t, err.Error(), "Password is required")
}

func TestValidate_Registration(t *testing.T) {
	valid := Registration{
		Email:           "ana@vrisa.co",
		Password:        "secret1",
		PasswordConfirm: "secret1",
		FirstName:       "Ana",
		LastName:        "Rojas",
	}
	require.NoError(t, Validate(valid))

	tests := []struct {
		name   string
		mutate func(*Registration)
		want   string
	}{
		{name: "short password", mutate: func(r *Registration) { r.Password, r.PasswordConfirm = "123", "123" }, want: "Password must be at least 6 characters"},
		{name: "mismatch", mutate: func(r *Registration) { r.PasswordConfirm = "other1" }, want: "PasswordConfirm must match Password"},
		{name: "unknown role", mutate: func(r *Registration) { r.RequestedRole = "admin" }, want: "RequestedRole must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			err := Validate(form)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRegistration_Payload(t *testing.T) {
	payload := Registration{Email: "a@b.co", Password: "p", PasswordConfirm: "p", FirstName: "A", LastName: "B", RequestedRole: "researcher"}.Payload()

	assert.Equal(t, "researcher", payload["requested_role"])
	assert.Equal(t, false, payload["belongs_to_organization"])
	assert.NotContains(t, payload, "phone")
	assert.NotContains(t, payload, "institution_id")
}

func TestValidate_MaintenanceLog(t *testing.T) {
	cert := filepath.Join(t.TempDir(), "cert.pdf")
	require.NoError(t, os.WriteFile(cert, []byte("%PDF-1.4"), 0600))

	require.NoError(t, Validate(MaintenanceLog{SensorID: 3, Date: "2025-04-01", Description: "Calibración", Certificate: cert}))

	err := Validate(MaintenanceLog{Date: "01/04/2025", Description: "ok", Certificate: cert + ".missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SensorID is required")
	assert.Contains(t, err.Error(), "Date must be a date in YYYY-MM-DD format")
	assert.Contains(t, err.Error(), "Certificate must point to an existing file")
}

func TestValidate_Review(t *testing.T) {
	require.NoError(t, Validate(Review{Status: NormalizeReviewStatus("accept")}))
	require.NoError(t, Validate(Review{Status: NormalizeReviewStatus("Rejected")}))

	err := Validate(Review{Status: NormalizeReviewStatus("maybe")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Status must be one of: ACCEPTED REJECTED")
}

func TestValidate_StationRegistration(t *testing.T) {
	require.NoError(t, Validate(StationRegistration{Name: "Univalle", Location: "Cali", InstitutionID: 2, Latitude: 3.37, Longitude: -76.53}))

	err := Validate(StationRegistration{Name: "Univalle", Location: "Cali", InstitutionID: 2, Latitude: 120})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Latitude must be a valid latitude")
}
