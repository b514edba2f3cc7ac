package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSchedulingConflict  = errors.New("doctor is already booked at this time")
)
