package services

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	mongoClient *mongo.Client
	database    *mongo.Database
)

// GetDatabase returns the MongoDB database instance
func GetDatabase() *mongo.Database {
	return database
}

// InitMongoDB initializes MongoDB connection
func InitMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	slog.Info("Connected to MongoDB")
	mongoClient = client

	return client, nil
}

// InitServices initializes all services
func InitServices(client *mongo.Client, databaseName string) {
	database = client.Database(databaseName)

	// Create indexes
	createIndexes()
}

// createIndexes creates necessary database indexes
func createIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	createCollectionIndexes(ctx, "users", []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "portal", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.M{"supplier_id": 1}},
	})

	createCollectionIndexes(ctx, "inventory", []mongo.IndexModel{
		{Keys: bson.M{"sku": 1}, Options: options.Index().SetUnique(true)},
		{Keys: bson.M{"supplier_id": 1}},
	})

	createCollectionIndexes(ctx, "stock_alerts", []mongo.IndexModel{
		{Keys: bson.D{{Key: "inventory_id", Value: 1}, {Key: "alert_type", Value: 1}, {Key: "is_resolved", Value: 1}}},
		{Keys: bson.M{"created_at": -1}},
	})

	createCollectionIndexes(ctx, "orders", []mongo.IndexModel{
		{Keys: bson.M{"order_ref": 1}, Options: options.Index().SetUnique(true)},
		{Keys: bson.M{"supplier_id": 1}},
		{Keys: bson.M{"status": 1}},
		{Keys: bson.M{"created_at": -1}},
	})

	createCollectionIndexes(ctx, "notifications", []mongo.IndexModel{
		{Keys: bson.D{{Key: "recipient_type", Value: 1}, {Key: "recipient_id", Value: 1}}},
		{Keys: bson.M{"created_at": -1}},
	})

	createCollectionIndexes(ctx, "browser_sessions", []mongo.IndexModel{
		{Keys: bson.M{"session_id": 1}, Options: options.Index().SetUnique(true)},
		{Keys: bson.M{"expires_at": 1}},
	})
}

func createCollectionIndexes(ctx context.Context, name string, indexes []mongo.IndexModel) {
	if _, err := database.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
		slog.Error("Failed to create indexes", "collection", name, "error", err)
	}
}
