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
)

const leavesCollection = "leaves"

type LeaveRepository struct {
	coll *mongo.Collection
}

func NewLeaveRepository(db *mongo.Database) *LeaveRepository {
	return &LeaveRepository{coll: db.Collection(leavesCollection)}
}

type mongoLeave struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	StartDate time.Time          `bson:"start_date"`
	EndDate   time.Time          `bson:"end_date"`
	Reason    string             `bson:"reason"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (ml *mongoLeave) toDomain() *domain.LeaveRequest {
	return &domain.LeaveRequest{
		ID:        ml.ID.Hex(),
		UserID:    ml.UserID,
		StartDate: ml.StartDate.UTC(),
		EndDate:   ml.EndDate.UTC(),
		Reason:    ml.Reason,
		Status:    domain.LeaveStatus(ml.Status),
		CreatedAt: ml.CreatedAt,
		UpdatedAt: ml.UpdatedAt,
	}
}

func (r *LeaveRepository) Create(ctx context.Context, leave *domain.LeaveRequest) (*domain.LeaveRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoLeave{
		UserID:    leave.UserID,
		StartDate: leave.StartDate,
		EndDate:   leave.EndDate,
		Reason:    leave.Reason,
		Status:    string(leave.Status),
		CreatedAt: leave.CreatedAt,
		UpdatedAt: leave.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert leave: %w", err)
	}

	created := *leave
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *LeaveRepository) FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLeaveNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ml mongoLeave
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("find leave: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *LeaveRepository) ListForUser(ctx context.Context, userID string) ([]*domain.LeaveRequest, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *LeaveRepository) ListByStatus(ctx context.Context, status domain.LeaveStatus) ([]*domain.LeaveRequest, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	return r.list(ctx, filter)
}

func (r *LeaveRepository) ListStartingIn(ctx context.Context, userID string, statuses []domain.LeaveStatus, from, to time.Time) ([]*domain.LeaveRequest, error) {
	names := make(bson.A, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}
	return r.list(ctx, bson.M{
		"user_id":    userID,
		"status":     bson.M{"$in": names},
		"start_date": bson.M{"$gte": from, "$lt": to},
	})
}

func (r *LeaveRepository) list(ctx context.Context, filter bson.M) ([]*domain.LeaveRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	defer cur.Close(ctx)

	var leaves []*domain.LeaveRequest
	for cur.Next(ctx) {
		var ml mongoLeave
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode leave: %w", err)
		}
		leaves = append(leaves, ml.toDomain())
	}
	return leaves, cur.Err()
}

// DecidePending flips a request out of Pending with one conditional update.
// The status filter is what makes terminal states terminal: once a request is
// Approved or Rejected no further decision can match it.
func (r *LeaveRepository) DecidePending(ctx context.Context, id string, status domain.LeaveStatus, now time.Time) (*domain.LeaveRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLeaveNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": string(domain.LeavePending)}
	update := bson.M{"$set": bson.M{"status": string(status), "updated_at": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ml mongoLeave
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("decide leave: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *LeaveRepository) CountByStatus(ctx context.Context, status domain.LeaveStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("count leaves: %w", err)
	}
	return n, nil
}

func ensureLeaveIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "start_date", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := db.Collection(leavesCollection).Indexes().CreateMany(ctx, indexes)
	return err
}
