package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/auth"
	"nightlife-portal/pkg/logger"
	"nightlife-portal/pkg/telemetry"
)

// Login 邮箱密码登录，返回账号信息和令牌
func (s *Service) Login(ctx context.Context, params *model.LoginParams) (*model.LoginResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.Login")
	defer span.End()

	if err := s.validate(params); err != nil {
		return nil, recordError(span, err)
	}

	account, err := s.accounts.GetByEmail(ctx, params.Email)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, recordError(span, fmt.Errorf("find account: %w", err))
	}
	if !auth.CheckPassword(account.Password, params.Password) {
		s.logger.Warn(ctx, "Login failed", logger.F("accountID", account.ID.Hex()))
		return nil, model.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwt, account.ID.Hex(), account.Role, s.now())
	if err != nil {
		return nil, recordError(span, fmt.Errorf("generate token: %w", err))
	}
	span.SetAttributes(attribute.String("account.id", account.ID.Hex()))

	return &model.LoginResult{
		ID:       account.ID.Hex(),
		Username: account.Username,
		Email:    account.Email,
		Role:     account.Role,
		Token:    token,
	}, nil
}

// FindPrincipal 供认证中间件按令牌中的账号ID加载账号
func (s *Service) FindPrincipal(ctx context.Context, accountID string) (*auth.Principal, error) {
	id, err := parseID(accountID)
	if err != nil {
		return nil, auth.ErrPrincipalNotFound
	}
	account, err := s.accounts.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, auth.ErrPrincipalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &auth.Principal{
		ID:       account.ID.Hex(),
		Username: account.Username,
		Email:    account.Email,
		Role:     account.Role,
	}, nil
}
