package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
	"github.com/swiftcourier/tracking-api/internal/core/ports"
)

// EventRepository implements ports.EventRepository using MongoDB. Events
// live in their own collection keyed by tracking_number; they are inserted
// once and never updated or removed.
type EventRepository struct {
	client    *mongo.Client
	col       *mongo.Collection
	shipments *mongo.Collection
}

func NewEventRepository(client *mongo.Client, db *mongo.Database) *EventRepository {
	return &EventRepository{
		client:    client,
		col:       db.Collection(collectionEvents),
		shipments: db.Collection(collectionShipments),
	}
}

type eventDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	TrackingNumber string             `bson:"tracking_number"`
	Status         string             `bson:"status"`
	Location       string             `bson:"location,omitempty"`
	Description    string             `bson:"description,omitempty"`
	Timestamp      time.Time          `bson:"timestamp"`
	ActorID        string             `bson:"actor_id,omitempty"`
}

// Append inserts the event and, when statusChanged is set, updates the
// shipment's denormalized status and updated_at inside the same transaction.
func (r *EventRepository) Append(ctx context.Context, event *domain.TrackingEvent, statusChanged bool, updatedAt time.Time) (*domain.TrackingEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	insertedID, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.col.InsertOne(sc, toEventDoc(event))
		if err != nil {
			return nil, err
		}
		if statusChanged {
			update := bson.M{"$set": bson.M{
				"status":     string(event.Status),
				"updated_at": updatedAt.UTC(),
			}}
			if _, err := r.shipments.UpdateOne(sc, bson.M{"tracking_number": event.TrackingNumber}, update); err != nil {
				return nil, err
			}
		}
		return res.InsertedID, nil
	})
	if err != nil {
		return nil, err
	}

	inserted := *event
	if oid, ok := insertedID.(primitive.ObjectID); ok {
		inserted.ID = oid.Hex()
	}
	return &inserted, nil
}

// ListByShipment returns the shipment's events ordered by timestamp, with
// _id as tiebreaker so events sharing a timestamp keep insertion order.
func (r *EventRepository) ListByShipment(ctx context.Context, trackingNumber string, order ports.SortOrder) ([]*domain.TrackingEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	dir := 1
	if order == ports.Descending {
		dir = -1
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: dir}, {Key: "_id", Value: dir}})
	cursor, err := r.col.Find(ctx, bson.M{"tracking_number": trackingNumber}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.TrackingEvent
	for cursor.Next(ctx) {
		var doc eventDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, fromEventDoc(&doc))
	}
	return out, cursor.Err()
}

// EnsureIndexes creates the compound index backing both sort directions.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tracking_number", Value: 1}, {Key: "timestamp", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toEventDoc(e *domain.TrackingEvent) eventDoc {
	return eventDoc{
		TrackingNumber: e.TrackingNumber,
		Status:         string(e.Status),
		Location:       e.Location,
		Description:    e.Description,
		Timestamp:      e.Timestamp.UTC(),
		ActorID:        e.ActorID,
	}
}

func fromEventDoc(d *eventDoc) *domain.TrackingEvent {
	return &domain.TrackingEvent{
		ID:             d.ID.Hex(),
		TrackingNumber: d.TrackingNumber,
		Status:         domain.ShipmentStatus(d.Status),
		Location:       d.Location,
		Description:    d.Description,
		Timestamp:      d.Timestamp.UTC(),
		ActorID:        d.ActorID,
	}
}
