package jwt

import (
	"context"
	"lexchange/conf"
	"lexchange/pkg/cache"
	"lexchange/pkg/logger"
	"lexchange/utils/security"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v4"
)

// 会话token。这里没有真实的身份系统，token只证明"这个客户端完成过login/register"，
// 其余字段只是展示信息

type CustomClaims struct {
	Address  string `json:"address"` // 账户的展示地址
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func BuildClaims(exp time.Time, address, username string) *CustomClaims {
	return &CustomClaims{
		Address:  address,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    conf.AppConfig.AppName,
		},
	}
}

func GenToken(c *CustomClaims, secretKey string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	ss, err := token.SignedString([]byte(secretKey))
	return ss, err
}

// 解析jwt token
func ParseToken(jwtStr, secretKey string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(jwtStr, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, err
	} else {
		return nil, err
	}
}

func getBlackListKey(token string) string {
	return "jwt_black_list:" + security.Md5(token)
}

// JoinBlackList 登出时把token拉黑到过期为止。没有redis时退化为不拉黑
func JoinBlackList(ctx context.Context, tokenStr string, secretKey string) (err error) {
	rc := cache.GetRedisClient()
	if rc == nil {
		return nil
	}
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil {
		return err
	}
	nowUnix := time.Now().Unix()
	timer := time.Duration(token.Claims.(*CustomClaims).ExpiresAt.Unix()-nowUnix) * time.Second
	err = rc.SetNX(ctx, getBlackListKey(token.Raw), nowUnix, timer).Err()
	return
}

func IsInBlackList(ctx context.Context, token string) bool {
	rc := cache.GetRedisClient()
	if rc == nil {
		return false
	}
	_, err := rc.Get(ctx, getBlackListKey(token)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Errorf("Redis连接异常:%v", err.Error())
		}
		return false
	}
	return true
}
