package interfaces

import "context"

// InterestStore persists per-chat interest lists.
// Load degrades to an empty mapping on corrupt or unreadable storage;
// startup must never fail on bad interest data.
type InterestStore interface {
	Load(ctx context.Context) (map[string][]string, error)
	Save(ctx context.Context, lists map[string][]string) error
	Close() error
}
