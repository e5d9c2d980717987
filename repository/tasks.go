package repository

import (
	"context"
	"errors"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"tempo/model"
)

type TasksRepo struct {
	MongoCollection *mongo.Collection
}

// Constructor function for TasksRepo
func GetTasksRepo(client *mongo.Client) *TasksRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("TASKS_COLLECTION")
	return &TasksRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// CreateTask inserts a new task
func (r *TasksRepo) CreateTask(ctx context.Context, task *model.Task) error {
	if task.UserID == "" {
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, task)
	return err
}

// GetUserTasks retrieves all tasks for a user
func (r *TasksRepo) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	var tasks []*model.Task
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask retrieves a single task, scoped to its owner
func (r *TasksRepo) GetTask(ctx context.Context, taskID, userID string) (*model.Task, error) {
	filter := bson.M{
		"_id":     taskID,
		"user_id": userID, // Ensure user owns this task
	}

	var task model.Task
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// UpdateTask writes the mutable fields of a task back to storage
func (r *TasksRepo) UpdateTask(ctx context.Context, task *model.Task) error {
	filter := bson.M{
		"_id":     task.TaskID,
		"user_id": task.UserID,
	}

	update := bson.M{
		"$set": bson.M{
			"title":       task.Title,
			"description": task.Description,
			"importance":  task.Importance,
			"completed":   task.Completed,
			"due_date":    task.DueDate,
			"updated_at":  task.UpdatedAt,
		},
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

// DeleteTask removes a specific task
func (r *TasksRepo) DeleteTask(ctx context.Context, taskID, userID string) error {
	filter := bson.M{
		"_id":     taskID,
		"user_id": userID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// CountCompletedTasks counts the user's completed tasks
func (r *TasksRepo) CountCompletedTasks(ctx context.Context, userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"user_id":   userID,
		"completed": true,
	})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
