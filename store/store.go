package store

import "context"

// HighScoreStore persists the best score across sessions
// Load returns zero when nothing has been saved yet
type HighScoreStore interface {
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context, score int) error
	Close() error
}
