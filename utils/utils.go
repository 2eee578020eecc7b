package utils

import (
	"encoding/hex"
	"math/rand"
	"time"
)

// RandHex 生成n个随机字节的hex串，用于伪交易哈希和展示地址，不是密码学安全的
func RandHex(n int) string {
	b := make([]byte, n)
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Read(b)
	return hex.EncodeToString(b)
}
