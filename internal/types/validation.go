package types

import "github.com/carejourney/client-go/internal/errors"

// Client-side validation runs before any request is built; failures never
// reach the network and never touch the cache.

// ValidateIDPresent checks a required identifier.
func ValidateIDPresent(id, field string) error {
	if id == "" {
		return errors.NewValidationError(field + " is required")
	}
	return nil
}

// ValidateScheduleName checks that name is one of the known collections.
func ValidateScheduleName(name ScheduleName) error {
	switch name {
	case ScheduleAppointments, ScheduleMedications:
		return nil
	}
	return errors.NewValidationError("unknown schedule: " + string(name))
}

// ValidateAddScheduleItem checks kind-specific required fields.
func ValidateAddScheduleItem(req AddScheduleItemRequest) error {
	switch req.Kind {
	case KindAppointment:
		if req.Title == "" {
			return errors.NewValidationError("appointment title is required")
		}
	case KindMedication:
		if req.Name == "" {
			return errors.NewValidationError("medication name is required")
		}
	default:
		return errors.NewValidationError("unknown schedule item kind: " + string(req.Kind))
	}
	if req.Date.IsZero() {
		return errors.NewValidationError("date is required")
	}
	return nil
}

// ValidateAddReply rejects empty reply bodies.
func ValidateAddReply(req AddReplyRequest) error {
	if req.Description == "" {
		return errors.NewValidationError("reply description is required")
	}
	return nil
}
