package sdk

import (
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Roles assigned by the backend.
const (
	RoleSuperAdmin        = "super_admin"
	RoleInstitutionHead   = "institution_head"
	RoleStationAdmin      = "station_admin"
	RoleResearcher        = "researcher"
	RoleCitizen           = "citizen"
	RoleInstitutionMember = "institution_member"

	// DefaultRole is assumed when neither the profile nor the token names a role.
	DefaultRole = RoleCitizen
)

// Registration status values.
const (
	RegistrationComplete              = "complete"
	RegistrationPendingRoleCompletion = "pending_role_completion"
)

// OrganizationRoles are the roles a new user may request when signing up on
// behalf of an organization.
var OrganizationRoles = []string{RoleStationAdmin, RoleResearcher, RoleInstitutionHead}

// User is the normalized identity the rest of the client relies on, whatever
// shape the backend profile arrived in.
type User struct {
	ID                    int64  `json:"id"`
	Email                 string `json:"email,omitempty"`
	FirstName             string `json:"first_name,omitempty"`
	LastName              string `json:"last_name,omitempty"`
	Phone                 string `json:"phone,omitempty"`
	PrimaryRole           string `json:"primary_role"`
	RoleStatus            string `json:"role_status,omitempty"`
	InstitutionID         int64  `json:"institution_id,omitempty"`
	InstitutionName       string `json:"institution_name,omitempty"`
	BelongsToOrganization bool   `json:"belongs_to_organization"`
	RequestedRole         string `json:"requested_role,omitempty"`
	RegistrationComplete  bool   `json:"registration_complete"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasRole reports whether the user's primary role is one of roles.
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.PrimaryRole == r {
			return true
		}
	}
	return false
}

// IsCitizen reports whether the user acts as a plain citizen: either not part of
// an organization or explicitly requesting the citizen role.
func (u *User) IsCitizen() bool {
	return !u.BelongsToOrganization || u.RequestedRole == RoleCitizen
}

// NeedsRegistrationCompletion reports whether an organization user still has to
// finish registering (no institution assigned and registration not complete).
func (u *User) NeedsRegistrationCompletion() bool {
	return !u.IsCitizen() && !u.RegistrationComplete && u.InstitutionID == 0
}

// rawProfile is the loosely typed view of a /users/{id}/ payload. Fields whose
// type varies between backend versions are kept as any.
type rawProfile struct {
	ID                    any    `mapstructure:"id"`
	UserID                any    `mapstructure:"user_id"`
	Email                 string `mapstructure:"email"`
	FirstName             string `mapstructure:"first_name"`
	LastName              string `mapstructure:"last_name"`
	Phone                 string `mapstructure:"phone"`
	PrimaryRole           any    `mapstructure:"primary_role"`
	RoleStatus            any    `mapstructure:"role_status"`
	Roles                 []any  `mapstructure:"roles"`
	InstitutionID         any    `mapstructure:"institution_id"`
	Institution           any    `mapstructure:"institution"`
	InstitutionName       string `mapstructure:"institution_name"`
	BelongsToOrganization bool   `mapstructure:"belongs_to_organization"`
	RequestedRole         any    `mapstructure:"requested_role"`
	Role                  any    `mapstructure:"role"`
	RegistrationComplete  bool   `mapstructure:"registration_complete"`
}

func decodeProfile(profile map[string]any) rawProfile {
	var raw rawProfile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return raw
	}
	// Fields that fail to decode keep their zero value; the rest are still set.
	_ = decoder.Decode(profile)
	return raw
}

// NormalizeUser builds a User from a profile payload and the access token claims.
// Each attribute is resolved through an ordered list of sources; the first
// non-empty value wins. Either argument may be nil.
func NormalizeUser(profile map[string]any, claims TokenClaims) User {
	raw := decodeProfile(profile)
	first := firstRole(raw.Roles)

	user := User{
		Email:                 raw.Email,
		FirstName:             raw.FirstName,
		LastName:              raw.LastName,
		Phone:                 raw.Phone,
		BelongsToOrganization: raw.BelongsToOrganization,
		RegistrationComplete:  raw.RegistrationComplete,
	}

	user.ID = cascade(
		func() int64 { return intOf(raw.ID) },
		func() int64 { return intOf(raw.UserID) },
		func() int64 { return intOf(claims["user_id"]) },
	)

	user.PrimaryRole = cascade(
		func() string { return stringOf(raw.PrimaryRole) },
		func() string { return stringOf(first["role_name"]) },
		func() string { return firstRoleName(raw.Roles) },
		func() string { return claims.String("primary_role") },
		func() string { return claims.String("role") },
		func() string { return DefaultRole },
	)

	user.RoleStatus = cascade(
		func() string { return stringOf(raw.RoleStatus) },
		func() string { return stringOf(first["status"]) },
		func() string { return claims.String("role_status") },
	)

	user.InstitutionID = cascade(
		func() int64 { return intOf(raw.InstitutionID) },
		func() int64 { return institutionID(raw.Institution) },
		func() int64 { return institutionID(first["institution"]) },
		func() int64 { return intOf(claims["institution_id"]) },
	)

	user.InstitutionName = cascade(
		func() string { return raw.InstitutionName },
		func() string { return institutionName(raw.Institution) },
	)

	user.RequestedRole = cascade(
		func() string { return stringOf(raw.RequestedRole) },
		func() string { return stringOf(raw.Role) },
	)

	return user
}

// cascade returns the first non-zero value produced by the strategies.
func cascade[T comparable](strategies ...func() T) T {
	var zero T
	for _, s := range strategies {
		if v := s(); v != zero {
			return v
		}
	}
	return zero
}

func firstRole(roles []any) map[string]any {
	if len(roles) == 0 {
		return nil
	}
	m, _ := roles[0].(map[string]any)
	return m
}

// firstRoleName handles role lists sent as plain strings.
func firstRoleName(roles []any) string {
	if len(roles) == 0 {
		return ""
	}
	s, _ := roles[0].(string)
	return strings.TrimSpace(s)
}

func institutionID(v any) int64 {
	if obj, ok := v.(map[string]any); ok {
		return intOf(obj["id"])
	}
	return intOf(v)
}

func institutionName(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	return cascade(
		func() string { return stringOf(obj["institute_name"]) },
		func() string { return stringOf(obj["name"]) },
	)
}

func stringOf(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func intOf(v any) int64 {
	n, _ := toInt64(v)
	return n
}
