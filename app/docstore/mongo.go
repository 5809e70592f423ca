package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ Store = (*MongoStore)(nil)

// MongoStore keeps each collection as a native MongoDB collection, with the
// document payload nested under a "data" field next to the timestamps.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

type mongoDocument struct {
	ID        string    `bson:"_id"`
	Data      bson.M    `bson:"data"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(database),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	var raw mongoDocument
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}

	doc := raw.toDocument(collection)
	return &doc, nil
}

func (s *MongoStore) List(ctx context.Context, collection string) ([]Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		var raw mongoDocument
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode document in %s: %w", collection, err)
		}
		docs = append(docs, raw.toDocument(collection))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents in %s: %w", collection, err)
	}

	return docs, nil
}

func (s *MongoStore) Set(ctx context.Context, collection, id string, data map[string]any) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set":         bson.M{"data": bson.M(data), "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}

	_, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MongoStore) Merge(ctx context.Context, collection, id string, fields map[string]any) error {
	now := time.Now().UTC()
	set := bson.M{"updated_at": now}
	for k, v := range fields {
		set["data."+k] = v
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": now},
	}

	_, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to merge document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (d mongoDocument) toDocument(collection string) Document {
	doc := Document{
		ID:        d.ID,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}

	// Round-trip through JSON so BSON-specific types (primitive.A,
	// primitive.DateTime) come back as the plain values the rest of the
	// code works with.
	payload, err := json.Marshal(d.Data)
	if err == nil {
		err = json.Unmarshal(payload, &doc.Data)
	}
	if err != nil {
		slog.Warn("Stored document payload could not be decoded", "collection", collection, "id", d.ID, "error", err)
		doc.Data = nil
	}

	return doc
}
