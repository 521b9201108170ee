package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig JWT配置
type JWTConfig struct {
	Secret     string
	ExpireTime time.Duration
}

// Claims 访问令牌载荷
type Claims struct {
	AccountID string `json:"id"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

var (
	// ErrEmptyToken 未携带令牌
	ErrEmptyToken = errors.New("empty token")
	// ErrInvalidToken 令牌签名、格式或有效期不合法
	ErrInvalidToken = errors.New("invalid token")
)

// GenerateToken 为账号签发令牌
func GenerateToken(config *JWTConfig, accountID, role string, now time.Time) (string, error) {
	if config == nil || config.Secret == "" {
		return "", fmt.Errorf("jwt secret not configured")
	}

	claims := Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.ExpireTime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Secret))
}

// ParseToken 校验令牌并返回载荷
func ParseToken(config *JWTConfig, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrEmptyToken
	}
	if config == nil || config.Secret == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// 校验签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.AccountID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
