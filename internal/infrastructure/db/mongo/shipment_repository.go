package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swiftcourier/tracking-api/internal/core/domain"
)

// ShipmentRepository implements ports.ShipmentRepository using MongoDB.
type ShipmentRepository struct {
	client *mongo.Client
	col    *mongo.Collection
	events *mongo.Collection
}

func NewShipmentRepository(client *mongo.Client, db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{
		client: client,
		col:    db.Collection(collectionShipments),
		events: db.Collection(collectionEvents),
	}
}

type shipmentDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	TrackingNumber  string             `bson:"tracking_number"`
	OwnerID         string             `bson:"owner_id"`
	Sender          domain.Contact     `bson:"sender"`
	Receiver        domain.Contact     `bson:"receiver"`
	PickupAddress   string             `bson:"pickup_address"`
	DeliveryAddress string             `bson:"delivery_address"`
	Weight          float64            `bson:"weight"`
	Description     string             `bson:"description,omitempty"`
	Status          string             `bson:"status"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

// Create inserts the shipment and its seed event in a single multi-document
// transaction. A unique index on tracking_number turns a generator collision
// into domain.ErrDuplicateTrackingNumber, which the service retries.
func (r *ShipmentRepository) Create(ctx context.Context, s *domain.Shipment, seed *domain.TrackingEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.col.InsertOne(sc, toShipmentDoc(s))
		if err != nil {
			return nil, err
		}
		if _, err := r.events.InsertOne(sc, toEventDoc(seed)); err != nil {
			return nil, err
		}
		return res.InsertedID, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateTrackingNumber
		}
		return err
	}
	return nil
}

func (r *ShipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc shipmentDoc
	err := r.col.FindOne(ctx, bson.M{"tracking_number": trackingNumber}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return fromShipmentDoc(&doc), nil
}

// ListByOwner returns shipments newest-first. An empty ownerID lists all.
func (r *ShipmentRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Shipment
	for cursor.Next(ctx) {
		var doc shipmentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, fromShipmentDoc(&doc))
	}
	return out, cursor.Err()
}

// EnsureIndexes creates the indexes the shipments collection relies on. The
// unique tracking_number index is load-bearing: it is what makes the create
// retry loop safe.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tracking_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toShipmentDoc(s *domain.Shipment) shipmentDoc {
	return shipmentDoc{
		TrackingNumber:  s.TrackingNumber,
		OwnerID:         s.OwnerID,
		Sender:          s.Sender,
		Receiver:        s.Receiver,
		PickupAddress:   s.PickupAddress,
		DeliveryAddress: s.DeliveryAddress,
		Weight:          s.Weight,
		Description:     s.Description,
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt.UTC(),
		UpdatedAt:       s.UpdatedAt.UTC(),
	}
}

func fromShipmentDoc(d *shipmentDoc) *domain.Shipment {
	return &domain.Shipment{
		ID:              d.ID.Hex(),
		TrackingNumber:  d.TrackingNumber,
		OwnerID:         d.OwnerID,
		Sender:          d.Sender,
		Receiver:        d.Receiver,
		PickupAddress:   d.PickupAddress,
		DeliveryAddress: d.DeliveryAddress,
		Weight:          d.Weight,
		Description:     d.Description,
		Status:          domain.ShipmentStatus(d.Status),
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
}
