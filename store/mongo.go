package store

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/safecare-api/schema"
)

const (
	mongoLogPrefix = "mongo"
)

type mongoDB struct {
	client   *mongo.Client
	database string
}

// pinDocument is the stored form of a hazard pin
type pinDocument struct {
	ID          string             `bson:"_id"`
	Geometry    *schema.GeoJSON    `bson:"geometry"`
	Type        schema.PinType     `bson:"type"`
	Category    schema.PinCategory `bson:"category"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"created_at"`
	Upvotes     int64              `bson:"upvotes"`
}

func newPinDocument(p schema.HazardPin) pinDocument {
	return pinDocument{
		ID:          p.ID,
		Geometry:    schema.NewGeoJSONPoint(p.Location),
		Type:        p.Type,
		Category:    p.Category,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		Upvotes:     p.Upvotes,
	}
}

func (d pinDocument) pin() schema.HazardPin {
	return schema.HazardPin{
		ID:          d.ID,
		Location:    d.Geometry.Location(),
		Type:        d.Type,
		Category:    d.Category,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		Upvotes:     d.Upvotes,
	}
}

// NewMongoPins - return mongo db backed pin storage
func NewMongoPins(client *mongo.Client, database string) Pins {
	return &mongoDB{
		client:   client,
		database: database,
	}
}

// Ping - ping mongo db
func (m mongoDB) Ping() error {
	return m.client.Ping(context.Background(), nil)
}

// Close - close mongo db connections
func (m mongoDB) Close() {
	log.WithField("prefix", mongoLogPrefix).Info("closing mongo db connections")
	_ = m.client.Disconnect(context.Background())
}

func (m *mongoDB) collection() *mongo.Collection {
	return m.client.Database(m.database).Collection(schema.PinCollection)
}

// AddPin inserts a new pin
func (m *mongoDB) AddPin(ctx context.Context, pin schema.HazardPin) (*schema.HazardPin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := m.collection().InsertOne(ctx, newPinDocument(pin)); err != nil {
		return nil, err
	}

	return &pin, nil
}

// GetPin finds a pin by id
func (m *mongoDB) GetPin(ctx context.Context, id string) (*schema.HazardPin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc pinDocument
	if err := m.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPinNotFound
		}
		return nil, err
	}

	pin := doc.pin()
	return &pin, nil
}

// ListPins lists pins newest first. With a near filter the result is
// ordered by distance instead.
func (m *mongoDB) ListPins(ctx context.Context, filter schema.PinFilter) ([]schema.HazardPin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}

	opts := options.Find()
	if filter.Near != nil && filter.RadiusMeters > 0 {
		query["geometry"] = bson.M{
			"$nearSphere": bson.M{
				"$geometry":    schema.NewGeoJSONPoint(*filter.Near),
				"$maxDistance": filter.RadiusMeters,
			},
		}
	} else {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	cursor, err := m.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var docs []pinDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	pins := make([]schema.HazardPin, 0, len(docs))
	for _, d := range docs {
		pins = append(pins, d.pin())
	}

	return pins, nil
}

// UpvotePin increases the upvote counter of a pin by one
func (m *mongoDB) UpvotePin(ctx context.Context, id string) (*schema.HazardPin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc pinDocument
	err := m.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"upvotes": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPinNotFound
		}
		return nil, err
	}

	pin := doc.pin()
	return &pin, nil
}

// DeletePin removes a pin
func (m *mongoDB) DeletePin(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := m.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrPinNotFound
	}

	return nil
}
