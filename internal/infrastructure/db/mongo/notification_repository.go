package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
)

// NotificationRepository implements ports.NotificationRepository using MongoDB.
type NotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{coll: db.Collection(collectionNotifications)}
}

type notificationDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         string             `bson:"user_id"`
	TrackingNumber string             `bson:"tracking_number"`
	Title          string             `bson:"title"`
	Message        string             `bson:"message"`
	IsRead         bool               `bson:"is_read"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (r *NotificationRepository) Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := notificationDoc{
		UserID:         n.UserID,
		TrackingNumber: n.TrackingNumber,
		Title:          n.Title,
		Message:        n.Message,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	inserted := *n
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		inserted.ID = oid.Hex()
	}
	return &inserted, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Notification
	for cursor.Next(ctx) {
		var doc notificationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, &domain.Notification{
			ID:             doc.ID.Hex(),
			UserID:         doc.UserID,
			TrackingNumber: doc.TrackingNumber,
			Title:          doc.Title,
			Message:        doc.Message,
			IsRead:         doc.IsRead,
			CreatedAt:      doc.CreatedAt.UTC(),
		})
	}
	return out, cursor.Err()
}

// MarkRead flips the read flag, scoped to the owning user.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotificationNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// EnsureIndexes creates the per-user feed index.
func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
