package handlers

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"attendance-tracker/models"
	"attendance-tracker/pkg/attendance"
	"attendance-tracker/repository"
)

var wib = time.FixedZone("WIB", 7*60*60)

func at(day, h, m int) time.Time {
	return time.Date(2024, time.March, day, h, m, 0, 0, wib)
}

// memAttendanceRepo answers range queries from a MemoryStore.
type memAttendanceRepo struct {
	*attendance.MemoryStore
	users *memUserRepo
	err   error
}

func newMemAttendanceRepo(users *memUserRepo) *memAttendanceRepo {
	return &memAttendanceRepo{MemoryStore: attendance.NewMemoryStore(), users: users}
}

func (r *memAttendanceRepo) FindDay(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (*models.Attendance, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.MemoryStore.FindDay(ctx, userID, start, end)
}

func (r *memAttendanceRepo) Find(_ context.Context, f repository.AttendanceFilter) ([]models.Attendance, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Attendance{}
	for _, rec := range r.Records() {
		if f.UserID != nil && rec.UserID != *f.UserID {
			continue
		}
		if !f.Start.IsZero() && rec.Date.Before(f.Start) {
			continue
		}
		if !f.End.IsZero() && rec.Date.After(f.End) {
			continue
		}
		if f.Status != "" && rec.Status != f.Status {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memAttendanceRepo) FindWithUsers(ctx context.Context, f repository.AttendanceFilter) ([]models.AttendanceWithUser, error) {
	records, err := r.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]models.AttendanceWithUser, 0, len(records))
	for _, rec := range records {
		joined := models.AttendanceWithUser{Attendance: rec}
		if u, _ := r.users.FindByID(ctx, rec.UserID); u != nil {
			s := u.Summary()
			joined.User = &s
		}
		out = append(out, joined)
	}
	return out, nil
}

func (r *memAttendanceRepo) InsertMany(ctx context.Context, records []models.Attendance) error {
	for i := range records {
		if err := r.Insert(ctx, &records[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *memAttendanceRepo) DeleteAll(context.Context) error { return nil }

type memUserRepo struct {
	users []models.User
	err   error
}

func (r *memUserRepo) add(u models.User) models.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users = append(r.users, u)
	return u
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
		if u.EmployeeID == user.EmployeeID {
			return repository.ErrEmployeeIDTaken
		}
	}
	*user = r.add(*user)
	return nil
}

func (r *memUserRepo) findFirst(match func(models.User) bool) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.findFirst(func(u models.User) bool { return u.Email == strings.ToLower(email) })
}

func (r *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findFirst(func(u models.User) bool { return u.ID == id })
}

func (r *memUserRepo) FindByEmployeeID(_ context.Context, code string) (*models.User, error) {
	return r.findFirst(func(u models.User) bool { return u.EmployeeID == code })
}

func (r *memUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	want := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []models.User{}
	for _, u := range r.users {
		if want[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) FindByRole(_ context.Context, role string) ([]models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []models.User{}
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) EmployeeIDExists(ctx context.Context, code string) (bool, error) {
	u, err := r.FindByEmployeeID(ctx, code)
	return u != nil, err
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, updateData bson.M) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.users {
		if r.users[i].ID != id {
			continue
		}
		if v, ok := updateData["name"].(string); ok {
			r.users[i].Name = v
		}
		if v, ok := updateData["department"].(string); ok {
			r.users[i].Department = v
		}
		found := r.users[i]
		return &found, nil
	}
	return nil, nil
}

func (r *memUserRepo) DeleteAll(context.Context) error { return nil }

type fakeQRCodeRepo struct {
	CreateFn     func(ctx context.Context, qr *models.QRCode) error
	FindByCodeFn func(ctx context.Context, code string) (*models.QRCode, error)
	FindActiveFn func(ctx context.Context, day, now time.Time) (*models.QRCode, error)
	RecordScanFn func(ctx context.Context, id, userID primitive.ObjectID) error
}

func (f *fakeQRCodeRepo) Create(ctx context.Context, qr *models.QRCode) error {
	return f.CreateFn(ctx, qr)
}

func (f *fakeQRCodeRepo) FindByCode(ctx context.Context, code string) (*models.QRCode, error) {
	return f.FindByCodeFn(ctx, code)
}

func (f *fakeQRCodeRepo) FindActive(ctx context.Context, day, now time.Time) (*models.QRCode, error) {
	return f.FindActiveFn(ctx, day, now)
}

func (f *fakeQRCodeRepo) RecordScan(ctx context.Context, id, userID primitive.ObjectID) error {
	return f.RecordScanFn(ctx, id, userID)
}

type fakeTokens struct{}

func (fakeTokens) GenerateToken(user *models.User) (string, error) {
	return "token-" + user.ID.Hex(), nil
}
