package uuid

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	guuid "github.com/google/uuid"
)

// 雪花id封装，每个进程一个节点

type SnowNode struct {
	node *snowflake.Node
}

func NewNode(nodeId int64) *SnowNode {
	node, err := snowflake.NewNode(nodeId)
	if err != nil {
		panic(err)
	}
	return &SnowNode{node: node}
}

// GenSnowID 生成一个全局唯一的int64 id
func (s *SnowNode) GenSnowID() int64 {
	return s.node.Generate().Int64()
}

// GenUUID16 生成16位的短uuid，用于request id之类
func GenUUID16() string {
	u := strings.ReplaceAll(guuid.NewString(), "-", "")
	return u[:16]
}
