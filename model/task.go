package model

import "time"

const (
	TitleMinLength       = 3
	TitleMaxLength       = 100
	DescriptionMaxLength = 500

	ImportanceMin     = 1
	ImportanceMax     = 100
	ImportanceDefault = 50

	// New tasks fall due a day after creation unless the client says otherwise.
	DefaultDueOffset = 24 * time.Hour
)

type Task struct {
	TaskID      string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Importance  int       `bson:"importance" json:"importance"`
	Completed   bool      `bson:"completed" json:"completed"`
	DueDate     time.Time `bson:"due_date" json:"due_date"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// ClampImportance forces an importance value into [ImportanceMin, ImportanceMax].
// Applied on every write, whatever the client sent.
func ClampImportance(value int) int {
	if value < ImportanceMin {
		return ImportanceMin
	}
	if value > ImportanceMax {
		return ImportanceMax
	}
	return value
}
