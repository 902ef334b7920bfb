package util

import (
	"math/rand"
)

const refCodeCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

const RefCodeLength = 20

// GenerateRefCode 產生訂單參照碼
// 20碼小寫英數字，碰撞由資料庫unique constraint擋下
func GenerateRefCode() string {
	b := make([]byte, RefCodeLength)
	for i := range b {
		b[i] = refCodeCharset[rand.Intn(len(refCodeCharset))]
	}
	return string(b)
}
