package models

import "strings"

// Role is the stored role string of a person. It is informational only.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultRole is assigned when a person is created without a role.
const DefaultRole = RoleUser

// ParseRole normalizes r and reports whether it is a known role.
// An empty string resolves to DefaultRole.
func ParseRole(r string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(r))) {
	case "":
		return DefaultRole, true
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Field length limits shared by validation and the schema.
const (
	GameNameMaxLength    = 100
	PersonNameMaxLength  = 100
	PhoneNumberMaxLength = 50
	PasswordMaxLength    = 100
	EventNameMaxLength   = 200
)
