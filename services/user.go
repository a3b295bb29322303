package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"inventory-pos/models"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CreateUser creates a new user in the database
func CreateUser(ctx context.Context, user *models.User) error {
	collection := database.Collection("users")

	// Check if user already exists with the same username in the same portal
	existingUser := collection.FindOne(ctx, bson.M{
		"username": user.Username,
		"portal":   user.Portal,
	})
	if existingUser.Err() != mongo.ErrNoDocuments {
		return fmt.Errorf("user already exists with this username")
	}

	if !models.IsValidPortal(string(user.Portal)) {
		return fmt.Errorf("invalid portal: %s", user.Portal)
	}

	// Hash password if it's not already hashed
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := HashPassword(user.PasswordHash)
		if err != nil {
			return err
		}
		user.PasswordHash = hashed
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	user.IsActive = true

	_, err := collection.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User created",
		"userID", user.ID.Hex(),
		"username", user.Username,
		"portal", user.Portal,
		"role", user.Role)

	return nil
}

// GetUserByUsername retrieves a user by username within a portal
func GetUserByUsername(ctx context.Context, username string, portal models.Portal) (*models.User, error) {
	collection := database.Collection("users")

	var user models.User
	err := collection.FindOne(ctx, bson.M{
		"username": username,
		"portal":   portal,
	}).Decode(&user)

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by their ObjectID
func GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	collection := database.Collection("users")

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	var user models.User
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUsersByPortal retrieves all users for a portal
func GetUsersByPortal(ctx context.Context, portal models.Portal) ([]*models.User, error) {
	collection := database.Collection("users")

	cursor, err := collection.Find(ctx, bson.M{"portal": portal})
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// UpdateUserRole updates a user's sub-role within their portal
func UpdateUserRole(ctx context.Context, userID, role string) error {
	collection := database.Collection("users")

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}

	result, err := collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// UpdateUserLastLogin records the time of a successful login
func UpdateUserLastLogin(ctx context.Context, userID string) error {
	collection := database.Collection("users")

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}

	_, err = collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"last_login": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}
