package booking

import (
	"fmt"
	"strings"

	"github.com/shareit-hub/service-shareit/pkg/domain"
)

// Role selects whose bookings a listing is about.
type Role string

const (
	RoleBooker Role = "USERS"
	RoleOwner  Role = "OWNERS"
)

// FindBookingState is a bucket crossed with a role, e.g. CURRENT_OWNERS.
type FindBookingState string

const (
	AllUsers       FindBookingState = "ALL_USERS"
	CurrentUsers   FindBookingState = "CURRENT_USERS"
	PastUsers      FindBookingState = "PAST_USERS"
	FutureUsers    FindBookingState = "FUTURE_USERS"
	WaitingUsers   FindBookingState = "WAITING_USERS"
	RejectedUsers  FindBookingState = "REJECTED_USERS"
	AllOwners      FindBookingState = "ALL_OWNERS"
	CurrentOwners  FindBookingState = "CURRENT_OWNERS"
	PastOwners     FindBookingState = "PAST_OWNERS"
	FutureOwners   FindBookingState = "FUTURE_OWNERS"
	WaitingOwners  FindBookingState = "WAITING_OWNERS"
	RejectedOwners FindBookingState = "REJECTED_OWNERS"
)

var findStates = map[FindBookingState]struct{}{
	AllUsers: {}, CurrentUsers: {}, PastUsers: {}, FutureUsers: {}, WaitingUsers: {}, RejectedUsers: {},
	AllOwners: {}, CurrentOwners: {}, PastOwners: {}, FutureOwners: {}, WaitingOwners: {}, RejectedOwners: {},
}

// ParseFindBookingState builds the composite key from a case-insensitive token and a role.
func ParseFindBookingState(token string, role Role) (FindBookingState, error) {
	state := FindBookingState(strings.ToUpper(token) + "_" + string(role))
	if _, ok := findStates[state]; !ok {
		return "", domain.NewValidationError(fmt.Sprintf("Unknown state: %s", token))
	}
	return state, nil
}
