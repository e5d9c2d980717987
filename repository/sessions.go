package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tempo/model"
)

type SessionsRepo struct {
	MongoCollection *mongo.Collection
}

// Constructor function for SessionsRepo
func GetSessionsRepo(client *mongo.Client) *SessionsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("SESSIONS_COLLECTION")
	return &SessionsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// CreateSession inserts a new focus session
func (r *SessionsRepo) CreateSession(ctx context.Context, session *model.FocusSession) error {
	if session.UserID == "" {
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, session)
	return err
}

// GetUserSessions retrieves the user's full session history
func (r *SessionsRepo) GetUserSessions(ctx context.Context, userID string) ([]*model.FocusSession, error) {
	var sessions []*model.FocusSession
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetOpenSession finds the most recently started session whose end time is
// still in the future. Returns ErrNotFound when the user has no open session.
func (r *SessionsRepo) GetOpenSession(ctx context.Context, userID string, now time.Time) (*model.FocusSession, error) {
	filter := bson.M{
		"user_id":  userID,
		"end_time": bson.M{"$gt": now},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "start_time", Value: -1}})

	var session model.FocusSession
	err := r.MongoCollection.FindOne(ctx, filter, opts).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// CloseSession rewrites a session's end time, ending it early. The filter is
// owner-scoped like every other write here.
func (r *SessionsRepo) CloseSession(ctx context.Context, sessionID, userID string, endTime time.Time) error {
	filter := bson.M{
		"_id":     sessionID,
		"user_id": userID,
	}
	update := bson.M{
		"$set": bson.M{"end_time": endTime},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
