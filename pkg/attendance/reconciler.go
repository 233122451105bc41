package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attendance-tracker/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store is keyed storage of one attendance record per (user, day). The two
// Mark methods are conditional writes: they return nil, nil when the record
// is not in the state the transition requires.
type Store interface {
	// FindDay returns the user's record whose date lies in [start, end], or nil.
	FindDay(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (*models.Attendance, error)
	// Insert creates rec, returning ErrDuplicateDay if the day already has one.
	Insert(ctx context.Context, rec *models.Attendance) error
	// MarkCheckIn sets the check-in on a record that has none yet.
	MarkCheckIn(ctx context.Context, id primitive.ObjectID, checkIn time.Time, status models.AttendanceStatus) (*models.Attendance, error)
	// MarkCheckOut sets the check-out on a record that is checked in but not out.
	MarkCheckOut(ctx context.Context, id primitive.ObjectID, checkOut time.Time, status models.AttendanceStatus, hours float64) (*models.Attendance, error)
}

// Reconciler drives the NoRecord -> CheckedIn -> CheckedOut transitions of a
// user's day.
type Reconciler struct {
	store  Store
	clock  Clock
	logger *zap.Logger
}

func NewReconciler(store Store, clock Clock, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{store: store, clock: clock, logger: logger}
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// Today returns the user's record for the current day, or nil.
func (r *Reconciler) Today(ctx context.Context, userID primitive.ObjectID) (*models.Attendance, error) {
	start, end := DayBounds(r.clock.Now())
	rec, err := r.store.FindDay(ctx, userID, start, end)
	if err != nil {
		return nil, storeErr(err)
	}
	return rec, nil
}

func (r *Reconciler) CheckIn(ctx context.Context, userID primitive.ObjectID) (*models.Attendance, error) {
	now := r.clock.Now()
	start, end := DayBounds(now)
	status := ClassifyCheckIn(now)

	existing, err := r.store.FindDay(ctx, userID, start, end)
	if err != nil {
		return nil, storeErr(err)
	}

	if existing == nil {
		rec := &models.Attendance{
			UserID:      userID,
			Date:        start,
			CheckInTime: &now,
			Status:      status,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		err = r.store.Insert(ctx, rec)
		if err == nil {
			r.logger.Info("checked in",
				zap.String("user_id", userID.Hex()),
				zap.String("status", string(status)),
			)
			return rec, nil
		}
		if !errors.Is(err, ErrDuplicateDay) {
			return nil, storeErr(err)
		}
		// Lost a create race; fall back to whatever the winner wrote.
		existing, err = r.store.FindDay(ctx, userID, start, end)
		if err != nil {
			return nil, storeErr(err)
		}
		if existing == nil {
			return nil, ErrRecordNotFound
		}
	}

	if existing.CheckInTime != nil {
		return nil, ErrAlreadyCheckedIn
	}

	updated, err := r.store.MarkCheckIn(ctx, existing.ID, now, status)
	if err != nil {
		return nil, storeErr(err)
	}
	if updated == nil {
		return nil, ErrAlreadyCheckedIn
	}
	r.logger.Info("checked in",
		zap.String("user_id", userID.Hex()),
		zap.String("status", string(status)),
	)
	return updated, nil
}

func (r *Reconciler) CheckOut(ctx context.Context, userID primitive.ObjectID) (*models.Attendance, error) {
	now := r.clock.Now()
	start, end := DayBounds(now)

	existing, err := r.store.FindDay(ctx, userID, start, end)
	if err != nil {
		return nil, storeErr(err)
	}
	if existing == nil || existing.CheckInTime == nil {
		return nil, ErrNoCheckInYet
	}
	if existing.CheckOutTime != nil {
		return nil, ErrAlreadyCheckedOut
	}

	checkIn := existing.CheckInTime.In(now.Location())
	hours := ElapsedHours(&checkIn, &now)
	status := ClassifyDay(&checkIn, &now, existing.Status)

	updated, err := r.store.MarkCheckOut(ctx, existing.ID, now, status, hours)
	if err != nil {
		return nil, storeErr(err)
	}
	if updated == nil {
		return nil, ErrAlreadyCheckedOut
	}
	r.logger.Info("checked out",
		zap.String("user_id", userID.Hex()),
		zap.String("status", string(status)),
		zap.Float64("total_hours", hours),
	)
	return updated, nil
}
