package models

import "time"

// DefaultChatKey is the chat key legacy flat-list interest files are
// migrated under.
const DefaultChatKey = "default"

// InterestRecord is one chat's persisted interest list.
type InterestRecord struct {
	ChatKey   string    `json:"chat_key" badgerhold:"key"`
	Tickers   []string  `json:"tickers"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}
