package models

import (
	"counting-app/types"
	"time"
)

// CounterID identifies one of the two counter slots of a group.
type CounterID string

const (
	Counter1 CounterID = "person1"
	Counter2 CounterID = "person2"
)

func (c CounterID) Valid() bool {
	return c == Counter1 || c == Counter2
}

// Other returns the opposite counter slot.
func (c CounterID) Other() CounterID {
	if c == Counter1 {
		return Counter2
	}
	return Counter1
}

// CountEntry is one ledger line: a partial count taken at one location.
type CountEntry struct {
	ID        types.SnowflakeID `json:"id"`
	Quantity  int               `json:"quantity"`
	Timestamp time.Time         `json:"timestamp"`
	Location  string            `json:"location"`
}

// Resolution is an administrative override of a discrepancy. Resolved
// implies FinalQuantity carries the agreed final count.
type Resolution struct {
	Resolved      bool `json:"resolved"`
	FinalQuantity int  `json:"final_quantity"`
}

// UserSession identifies whose ledger the active view reads and writes.
type UserSession struct {
	SessionID   string    `json:"session_id"`
	GroupID     string    `json:"group_id"`
	CounterID   CounterID `json:"counter_id"`
	CounterName string    `json:"counter_name"`
}

// ProductStatus is the reconciliation state of one product as seen
// from a view. The counting view only ever reports pending/counted.
type ProductStatus string

const (
	StatusPending    ProductStatus = "pending"
	StatusCounted    ProductStatus = "counted"
	StatusMatch      ProductStatus = "match"
	StatusDiff       ProductStatus = "diff"
	StatusPersonDiff ProductStatus = "person_diff"
	StatusVerified   ProductStatus = "verified"
)
