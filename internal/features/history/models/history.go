package models

import "time"

// Entry is one past verification as persisted locally. The shape matches the
// web client's localStorage records: {hash, result, date}.
type Entry struct {
	Hash   string    `json:"hash"`
	Result string    `json:"result"`
	Date   time.Time `json:"date"`
}
