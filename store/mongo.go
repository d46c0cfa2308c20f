package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo stores one document per key: {_id: key, value: "<json>"}.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type kvDocument struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// NewMongo connects and pings before returning.
func NewMongo(ctx context.Context, uri, databaseName string) (*Mongo, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Mongo{
		client:     client,
		collection: client.Database(databaseName).Collection("kv"),
	}, nil
}

func (m *Mongo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc kvDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(doc.Value), true, nil
}

func (m *Mongo) Put(ctx context.Context, key string, value []byte) error {
	_, err := m.collection.ReplaceOne(ctx,
		bson.M{"_id": key},
		kvDocument{Key: key, Value: string(value)},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (m *Mongo) Close() error {
	return m.client.Disconnect(context.Background())
}
