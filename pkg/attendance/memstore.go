package attendance

import (
	"context"
	"sync"
	"time"

	"attendance-tracker/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type dayKey struct {
	user primitive.ObjectID
	day  string
}

func keyOf(userID primitive.ObjectID, t time.Time) dayKey {
	return dayKey{user: userID, day: t.Format("2006-01-02")}
}

// MemoryStore is a Store held in a map keyed by (user, local day).
// Records are copied in and out so callers never share state with the map.
type MemoryStore struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]dayKey
	days map[dayKey]models.Attendance
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[primitive.ObjectID]dayKey),
		days: make(map[dayKey]models.Attendance),
	}
}

func (s *MemoryStore) FindDay(_ context.Context, userID primitive.ObjectID, start, _ time.Time) (*models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.days[keyOf(userID, start)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Insert(_ context.Context, rec *models.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := keyOf(rec.UserID, rec.Date)
	if _, ok := s.days[k]; ok {
		return ErrDuplicateDay
	}
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	s.days[k] = *rec
	s.byID[rec.ID] = k
	return nil
}

func (s *MemoryStore) MarkCheckIn(_ context.Context, id primitive.ObjectID, checkIn time.Time, status models.AttendanceStatus) (*models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	rec := s.days[k]
	if rec.CheckInTime != nil {
		return nil, nil
	}
	rec.CheckInTime = &checkIn
	rec.Status = status
	rec.UpdatedAt = checkIn
	s.days[k] = rec
	return &rec, nil
}

func (s *MemoryStore) MarkCheckOut(_ context.Context, id primitive.ObjectID, checkOut time.Time, status models.AttendanceStatus, hours float64) (*models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	rec := s.days[k]
	if rec.CheckInTime == nil || rec.CheckOutTime != nil {
		return nil, nil
	}
	rec.CheckOutTime = &checkOut
	rec.Status = status
	rec.TotalHours = hours
	rec.UpdatedAt = checkOut
	s.days[k] = rec
	return &rec, nil
}

// Records returns a snapshot of every stored record.
func (s *MemoryStore) Records() []models.Attendance {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Attendance, 0, len(s.days))
	for _, rec := range s.days {
		out = append(out, rec)
	}
	return out
}
