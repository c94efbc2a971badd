// Package models holds the GORM entities and request payloads of the job board.
package models

// All returns every persisted model in migration order
func All() []any {
	return []any{
		&Job{},
		&User{},
		&Application{},
		&Bookmark{},
		&Review{},
		&Notification{},
	}
}
