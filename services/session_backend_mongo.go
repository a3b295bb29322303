package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory-pos/models"
)

// MongoSessionBackend stores browser sessions in the browser_sessions
// collection
type MongoSessionBackend struct {
	db *mongo.Database
}

func NewMongoSessionBackend(db *mongo.Database) *MongoSessionBackend {
	return &MongoSessionBackend{db: db}
}

func (b *MongoSessionBackend) collection() *mongo.Collection {
	return b.db.Collection("browser_sessions")
}

func (b *MongoSessionBackend) Get(ctx context.Context, sessionID string) (*models.BrowserSession, error) {
	var session models.BrowserSession
	err := b.collection().FindOne(ctx, bson.M{
		"session_id": sessionID,
		"expires_at": bson.M{"$gt": time.Now()},
	}).Decode(&session)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (b *MongoSessionBackend) Save(ctx context.Context, session *models.BrowserSession) error {
	_, err := b.collection().ReplaceOne(
		ctx,
		bson.M{"session_id": session.SessionID},
		session,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (b *MongoSessionBackend) Delete(ctx context.Context, sessionID string) error {
	_, err := b.collection().DeleteOne(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (b *MongoSessionBackend) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := b.collection().DeleteMany(ctx, bson.M{
		"expires_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.DeletedCount, nil
}
