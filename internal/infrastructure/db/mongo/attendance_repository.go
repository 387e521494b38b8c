package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

const attendanceCollection = "attendance"

type AttendanceRepository struct {
	coll *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{coll: db.Collection(attendanceCollection)}
}

type mongoAttendance struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	Date         time.Time          `bson:"date"`
	ClockInTime  *time.Time         `bson:"clock_in_time,omitempty"`
	ClockOutTime *time.Time         `bson:"clock_out_time,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (ma *mongoAttendance) toDomain() *domain.AttendanceRecord {
	return &domain.AttendanceRecord{
		ID:           ma.ID.Hex(),
		UserID:       ma.UserID,
		Date:         ma.Date.UTC(),
		ClockInTime:  utcPtr(ma.ClockInTime),
		ClockOutTime: utcPtr(ma.ClockOutTime),
		CreatedAt:    ma.CreatedAt,
		UpdatedAt:    ma.UpdatedAt,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// ClockIn performs one conditional upsert: it matches the day's record only
// when no clock-in time is present, and inserts the record when the day has
// none. A concurrent or repeated clock-in misses the filter, so the upsert
// attempts a second insert and trips the unique (user_id, date) index — that
// duplicate-key error is the AlreadyClockedIn signal, never a second record.
func (r *AttendanceRepository) ClockIn(ctx context.Context, userID string, day, now time.Time) (*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"user_id":       userID,
		"date":          day,
		"clock_in_time": bson.M{"$exists": false},
	}
	update := bson.M{
		"$set":         bson.M{"clock_in_time": now, "updated_at": now},
		"$setOnInsert": bson.M{"user_id": userID, "date": day, "created_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var ma mongoAttendance
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ma)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyClockedIn
		}
		return nil, fmt.Errorf("clock in: %w", err)
	}
	return ma.toDomain(), nil
}

// ClockOut closes the day's open session with a single conditional update.
func (r *AttendanceRepository) ClockOut(ctx context.Context, userID string, day, now time.Time) (*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"user_id":        userID,
		"date":           day,
		"clock_in_time":  bson.M{"$exists": true},
		"clock_out_time": bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{"clock_out_time": now, "updated_at": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ma mongoAttendance
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ma)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoOpenSession
		}
		return nil, fmt.Errorf("clock out: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AttendanceRepository) List(ctx context.Context, filter ports.AttendanceFilter) ([]*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Month >= 1 && filter.Month <= 12 && filter.Year > 0 {
		from, to := domain.MonthWindowUTC(filter.Year, time.Month(filter.Month))
		query["date"] = bson.M{"$gte": from, "$lt": to}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer cur.Close(ctx)

	var records []*domain.AttendanceRecord
	for cur.Next(ctx) {
		var ma mongoAttendance
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode attendance: %w", err)
		}
		records = append(records, ma.toDomain())
	}
	return records, cur.Err()
}

func (r *AttendanceRepository) CountClockedInDays(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"user_id":       userID,
		"date":          bson.M{"$gte": from, "$lt": to},
		"clock_in_time": bson.M{"$exists": true},
	})
	if err != nil {
		return 0, fmt.Errorf("count worked days: %w", err)
	}
	return n, nil
}

func (r *AttendanceRepository) PresentUserIDs(ctx context.Context, day time.Time) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"user_id": 1})
	cur, err := r.coll.Find(ctx, bson.M{
		"date":          day,
		"clock_in_time": bson.M{"$exists": true},
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("present users: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			UserID string `bson:"user_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode attendance: %w", err)
		}
		ids = append(ids, doc.UserID)
	}
	return ids, cur.Err()
}

func ensureAttendanceIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	}

	_, err := db.Collection(attendanceCollection).Indexes().CreateMany(ctx, indexes)
	return err
}
