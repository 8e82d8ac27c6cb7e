package sdk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

func TestNormalizeUser_PrimaryRole(t *testing.T) {
	tests := []struct {
		name    string
		profile map[string]any
		claims  sdk.TokenClaims
		want    string
	}{
		{
			name:    "explicit primary_role",
			profile: map[string]any{"primary_role": "station_admin", "roles": []any{map[string]any{"role_name": "researcher"}}},
			want:    sdk.RoleStationAdmin,
		},
		{
			name:    "first entry of roles list",
			profile: map[string]any{"roles": []any{map[string]any{"role_name": "institution_head", "status": "approved"}, map[string]any{"role_name": "researcher"}}},
			want:    sdk.RoleInstitutionHead,
		},
		{
			name:    "roles as plain strings",
			profile: map[string]any{"roles": []any{"researcher"}},
			want:    sdk.RoleResearcher,
		},
		{
			name:    "token primary_role claim",
			profile: map[string]any{"email": "a@b.co"},
			claims:  sdk.TokenClaims{"primary_role": "super_admin"},
			want:    sdk.RoleSuperAdmin,
		},
		{
			name:    "token role claim",
			profile: map[string]any{},
			claims:  sdk.TokenClaims{"role": "station_admin"},
			want:    sdk.RoleStationAdmin,
		},
		{
			name:    "empty roles list defaults to citizen",
			profile: map[string]any{"roles": []any{}},
			want:    sdk.RoleCitizen,
		},
		{
			name: "nothing at all defaults to citizen",
			want: sdk.RoleCitizen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := sdk.NormalizeUser(tt.profile, tt.claims)
			assert.Equal(t, tt.want, user.PrimaryRole)
		})
	}
}

func TestNormalizeUser_Institution(t *testing.T) {
	tests := []struct {
		name     string
		profile  map[string]any
		claims   sdk.TokenClaims
		wantID   int64
		wantName string
	}{
		{name: "institution_id number", profile: map[string]any{"institution_id": float64(4)}, wantID: 4},
		{name: "institution as string", profile: map[string]any{"institution": "9"}, wantID: 9},
		{
			name:     "institution object",
			profile:  map[string]any{"institution": map[string]any{"id": float64(12), "institute_name": "Univalle"}},
			wantID:   12,
			wantName: "Univalle",
		},
		{
			name:    "from first role",
			profile: map[string]any{"roles": []any{map[string]any{"role_name": "station_admin", "institution": float64(3)}}},
			wantID:  3,
		},
		{name: "from token", claims: sdk.TokenClaims{"institution_id": float64(21)}, wantID: 21},
		{name: "none", profile: map[string]any{"institution": nil}, wantID: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := sdk.NormalizeUser(tt.profile, tt.claims)
			assert.Equal(t, tt.wantID, user.InstitutionID)
			assert.Equal(t, tt.wantName, user.InstitutionName)
		})
	}
}

func TestNormalizeUser_Fields(t *testing.T) {
	profile := map[string]any{
		"user_id":                 "15",
		"email":                   "ana@vrisa.co",
		"first_name":              "Ana",
		"last_name":               "Rojas",
		"role":                    "researcher",
		"role_status":             "pending",
		"belongs_to_organization": true,
		"registration_complete":   "false",
	}

	user := sdk.NormalizeUser(profile, sdk.TokenClaims{"user_id": float64(99)})

	assert.Equal(t, int64(15), user.ID)
	assert.Equal(t, "ana@vrisa.co", user.Email)
	assert.Equal(t, "Ana Rojas", user.FullName())
	assert.Equal(t, "researcher", user.RequestedRole)
	assert.Equal(t, "pending", user.RoleStatus)
	assert.True(t, user.BelongsToOrganization)
	assert.False(t, user.RegistrationComplete)
	assert.True(t, user.NeedsRegistrationCompletion())
}

func TestNormalizeUser_IDFromToken(t *testing.T) {
	user := sdk.NormalizeUser(map[string]any{"email": "x@y.z"}, sdk.TokenClaims{"user_id": float64(99)})
	assert.Equal(t, int64(99), user.ID)
}

func TestUser_NeedsRegistrationCompletion(t *testing.T) {
	tests := []struct {
		name string
		user sdk.User
		want bool
	}{
		{name: "citizen", user: sdk.User{BelongsToOrganization: false}, want: false},
		{name: "organization user requesting citizen", user: sdk.User{BelongsToOrganization: true, RequestedRole: sdk.RoleCitizen}, want: false},
		{name: "organization user pending", user: sdk.User{BelongsToOrganization: true, RequestedRole: sdk.RoleStationAdmin}, want: true},
		{name: "registration complete", user: sdk.User{BelongsToOrganization: true, RegistrationComplete: true}, want: false},
		{name: "institution assigned", user: sdk.User{BelongsToOrganization: true, InstitutionID: 2}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.NeedsRegistrationCompletion())
		})
	}
}
