package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"seaview/config"
	"seaview/infras/jwt"
	"seaview/infras/otel"
	"seaview/internal/domains/auth/model/dto"
	operatorModel "seaview/internal/domains/operator/model"
	operatorRepo "seaview/internal/domains/operator/repository"
	"seaview/shared"
	"seaview/shared/constant"
	gDto "seaview/shared/dto"
	"seaview/shared/failure"
	"seaview/shared/password"
	"seaview/shared/timezone"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, operatorID string) error
}

type serviceImpl struct {
	repo       operatorRepo.Operator
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(repo operatorRepo.Operator, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		repo:       repo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	emailFilter := emailFilter(req.Email)

	operator, err := s.repo.Get(ctx, emailFilter)
	if err != nil || operator.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.BadRequestFromString("invalid email or password") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, operator.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString("invalid email or password") // nolint:wrapcheck
	}

	if !operator.Active {
		return res, failure.BadRequestFromString("operator account is deactivated") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(operator.ID, operator.Email, operator.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}

	if err := s.repo.Update(ctx, shared.TransformFields(lastLogin, operator.ID), emailFilter); err != nil {
		log.Warn().Err(err).Str("operator_id", operator.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, operatorID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(operatorID, operatorModel.FieldID, operatorModel.TableName)

	operator, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get operator")

		return fmt.Errorf("failed to get operator: %w", err)
	}

	if operator.ID == constant.Empty {
		return failure.NotFound("operator not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, operator.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}

	if err = s.repo.Update(ctx, shared.TransformFields(updatePassword, operator.ID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    operatorModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
				Table:    operatorModel.TableName,
			},
		},
	}
}
