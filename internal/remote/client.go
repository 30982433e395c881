// Package remote talks to the backend row store holding each user's
// progression record: an append-only completed_modules table and the
// join_date column on users.
package remote

import (
	"context"
	"time"
)

// CompletedModule is one row of the completed_modules table.
type CompletedModule struct {
	UserID      string    `json:"user_id"`
	ModuleID    string    `json:"module_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// Client is the narrow interface the progression store depends on.
// completed_modules is append-only: insert and select, no update/delete.
type Client interface {
	// CompletedModules returns all completion rows for the user.
	CompletedModules(ctx context.Context, userID string) ([]CompletedModule, error)

	// InsertCompletedModule appends one completion row.
	InsertCompletedModule(ctx context.Context, row CompletedModule) error

	// JoinDate returns the user's program join date.
	// ok is false when the user row has no join date yet.
	JoinDate(ctx context.Context, userID string) (time.Time, bool, error)

	// UpdateJoinDate sets the user's join date.
	UpdateJoinDate(ctx context.Context, userID string, joinDate time.Time) error
}
