package attendance

import "errors"

var (
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	ErrNoCheckInYet      = errors.New("please check in first")
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrStoreUnavailable  = errors.New("attendance store unavailable")

	// ErrDuplicateDay is returned by Store.Insert when the (user, day) key is taken.
	ErrDuplicateDay = errors.New("attendance for this day already exists")
)
