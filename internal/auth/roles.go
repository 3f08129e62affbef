package auth

import (
	"errors"
	"fmt"
)

// Role is the closed set of principal kinds in the platform. Handlers switch
// on it exhaustively instead of comparing raw strings from session metadata.
type Role int

const (
	RoleUnknown Role = iota
	RoleChef
	RoleBusiness
	RoleCompany
	RoleAdmin
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch s {
	case "chef":
		return RoleChef, nil
	case "business":
		return RoleBusiness, nil
	case "company":
		return RoleCompany, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleUnknown, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleChef:
		return "chef"
	case RoleBusiness:
		return "business"
	case RoleCompany:
		return "company"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// CanManageVenues reports whether the role may hold venue-manager rights at
// all. The per-venue check still compares against the venue's manager id.
func (r Role) CanManageVenues() bool {
	switch r {
	case RoleBusiness, RoleCompany, RoleAdmin:
		return true
	case RoleChef, RoleUnknown:
		return false
	default:
		return false
	}
}
