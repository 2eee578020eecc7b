package ecode

// 业务错误码。0表示成功，其余按模块分段
const (
	Success = 0

	// 通用
	Unknown     = 10001
	ValidateErr = 10002
	NotFoundErr = 10003

	// 鉴权
	RequireAuthErr   = 10101
	UserLoginErr     = 10102
	NotAuthenticated = 10103

	// 账本
	InsufficientBalance = 10201
	InsufficientAsset   = 10202
	InvalidInput        = 10203
	StoreConflict       = 10204
)

var messages = map[int]string{
	Success:             "success",
	Unknown:             "unknown error",
	ValidateErr:         "validate error",
	NotFoundErr:         "not found",
	RequireAuthErr:      "require auth",
	UserLoginErr:        "login failed",
	NotAuthenticated:    "not authenticated",
	InsufficientBalance: "insufficient balance",
	InsufficientAsset:   "insufficient asset",
	InvalidInput:        "invalid input",
	StoreConflict:       "session store conflict",
}

// Text 返回错误码的默认描述
func Text(code int) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return messages[Unknown]
}
