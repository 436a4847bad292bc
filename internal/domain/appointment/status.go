package appointment

import "github.com/TSUGO-CORPORATED/tsugo-server/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusRequested Status = "Requested"
	StatusAccepted  Status = "Accepted"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

// ===============================
// Transitions
// ===============================

// Requested -> Accepted -> Completed, with Cancelled reachable from
// Requested or Accepted. Completed and Cancelled are terminal.

// CanAccept: only a Requested appointment may be claimed by an interpreter.
func CanAccept(current Status) error {
	if current != StatusRequested {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel: any non-terminal appointment may be cancelled.
func CanCancel(current Status) error {
	if current != StatusRequested && current != StatusAccepted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: an appointment must have been accepted before completion.
func CanComplete(current Status) error {
	if current != StatusAccepted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus is forced on every new appointment.
func InitialStatus() Status {
	return StatusRequested
}
