package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// 角色
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ErrPrincipalNotFound 令牌有效但账号已不存在
var ErrPrincipalNotFound = errors.New("principal not found")

// Principal 已认证的账号
type Principal struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// IsAdmin 是否管理员
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// PrincipalFinder 按账号ID查找账号
type PrincipalFinder interface {
	FindPrincipal(ctx context.Context, accountID string) (*Principal, error)
}

// HashPassword 生成密码哈希
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword 校验密码
func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
