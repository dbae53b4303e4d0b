package booking

import "github.com/homease/home-services-backend/internal/user"

// CanTransition decides whether an actor role may move a booking it owns from
// one status to another. Ownership is checked by the caller; this function
// only encodes the transition table:
//
//	customer: pending/confirmed -> cancelled
//	provider: pending -> confirmed, pending/confirmed -> completed
//	admin:    all of the above
//
// completed and cancelled are terminal for everyone.
func CanTransition(role user.Role, from, to Status) error {
	if !ValidStatus(string(to)) {
		return ErrInvalidStatus
	}
	if from == StatusCompleted || from == StatusCancelled {
		return ErrTransitionNotAllowed
	}

	switch to {
	case StatusConfirmed:
		if from != StatusPending {
			return ErrTransitionNotAllowed
		}
		if role == user.RoleProvider || role == user.RoleAdmin {
			return nil
		}
	case StatusCompleted:
		if role == user.RoleProvider || role == user.RoleAdmin {
			return nil
		}
	case StatusCancelled:
		if role == user.RoleCustomer || role == user.RoleAdmin {
			return nil
		}
	case StatusPending:
		// No transition targets pending; bookings start there.
	}

	return ErrTransitionNotAllowed
}
