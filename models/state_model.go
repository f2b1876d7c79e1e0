package models

import "time"

// StateRecord is one persisted snapshot: a logical key mapped to a
// JSON document. The whole application state lives in a handful of
// these rows (catalog, counts, resolutions, active session).
type StateRecord struct {
	Key       string `json:"key" gorm:"primaryKey;size:64"`
	Value     string `json:"value"`
	UpdatedAt time.Time
}
