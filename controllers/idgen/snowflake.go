// Package idgen issues unique int64 ids for ledger entries. Snowflake
// ids are time-ordered but carry a sequence number, so two entries
// created within the same millisecond never collide.
package idgen

import (
	"log"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

func Init() {
	var err error
	node, err = snowflake.NewNode(1)
	if err != nil {
		log.Fatalf("Failed to init Snowflake: %v", err)
	}
}

func GenerateID() int64 {
	return node.Generate().Int64()
}
