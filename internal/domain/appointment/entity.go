package appointment

import (
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Accept(ap *models.Appointment, interpreterUserID uint) error {
	if err := CanAccept(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusAccepted)
	ap.InterpreterUserID = &interpreterUserID
	return nil
}

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	return nil
}
