package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBIndexer(client *mongo.Client, dbName string) *MongoDBIndexer {
	return &MongoDBIndexer{
		ctx:      context.Background(),
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

func (m *MongoDBIndexer) IndexAll() error {
	return m.IndexPinCollection()
}

func (m *MongoDBIndexer) IndexPinCollection() error {
	if err := m.createIndex(PinCollection, mongo.IndexModel{
		Keys: bson.M{
			"geometry": "2dsphere",
		},
	}); err != nil {
		return err
	}

	return m.createIndex(PinCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "type", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
}
