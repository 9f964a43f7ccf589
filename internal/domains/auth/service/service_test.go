package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"seaview/config"
	"seaview/infras/jwt"
	jwtMocks "seaview/infras/jwt/mocks"
	"seaview/infras/otel/mocks"
	"seaview/internal/domains/auth/model/dto"
	"seaview/internal/domains/auth/service"
	operatorMocks "seaview/internal/domains/operator/mocks"
	operatorModel "seaview/internal/domains/operator/model"
	"seaview/shared/constant"
	"seaview/shared/failure"
	gModel "seaview/shared/model"
	"seaview/shared/password"
	"seaview/shared/timezone"
)

func validOperator(t *testing.T) operatorModel.Operator {
	t.Helper()

	hashed, err := password.Hash("password")
	require.NoError(t, err)

	fullName := "Site Operator"

	return operatorModel.Operator{
		ID:       "operator-id-123",
		Email:    "operator@example.com",
		Password: hashed,
		Role:     constant.RoleOperator,
		FullName: &fullName,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOperatorRepo := operatorMocks.NewMockOperator(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockOperatorRepo, cfg, mockOtel, mockJWT)

	operator := validOperator(t)

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful login",
			req: dto.LoginRequest{
				Email:    operator.Email,
				Password: "password",
			},
			setupMock: func() {
				mockOperatorRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(operator, nil)

				mockJWT.EXPECT().
					GenerateTokenPair(operator.ID, operator.Email, operator.Role).
					Return(&jwt.TokenPair{
						AccessToken:  "access-token",
						RefreshToken: "refresh-token",
					}, nil)

				mockOperatorRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "unknown email",
			req: dto.LoginRequest{
				Email:    "nobody@example.com",
				Password: "password",
			},
			setupMock: func() {
				mockOperatorRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(operatorModel.Operator{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req: dto.LoginRequest{
				Email:    operator.Email,
				Password: "not-the-password",
			},
			setupMock: func() {
				mockOperatorRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(operator, nil)
			},
			wantErr: true,
		},
		{
			name: "deactivated account",
			req: dto.LoginRequest{
				Email:    operator.Email,
				Password: "password",
			},
			setupMock: func() {
				deactivated := operator
				deactivated.Active = false

				mockOperatorRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(deactivated, nil)
			},
			wantErr: true,
		},
		{
			name: "last login update failure does not fail login",
			req: dto.LoginRequest{
				Email:    operator.Email,
				Password: "password",
			},
			setupMock: func() {
				mockOperatorRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(operator, nil)

				mockJWT.EXPECT().
					GenerateTokenPair(operator.ID, operator.Email, operator.Role).
					Return(&jwt.TokenPair{
						AccessToken:  "access-token",
						RefreshToken: "refresh-token",
					}, nil)

				mockOperatorRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("write failed"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOperatorRepo := operatorMocks.NewMockOperator(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockOperatorRepo, &config.Config{}, mockOtel, mockJWT)

	t.Run("valid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("refresh-token").
			Return(&jwt.TokenPair{
				AccessToken:  "new-access-token",
				RefreshToken: "new-refresh-token",
			}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})
		assert.NoError(t, err)
		assert.Equal(t, "new-access-token", res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("garbage").
			Return(nil, jwt.ErrInvalidToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "garbage"})
		assert.Error(t, err)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOperatorRepo := operatorMocks.NewMockOperator(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockOperatorRepo, &config.Config{}, mockOtel, mockJWT)

	operator := validOperator(t)

	t.Run("successful change", func(t *testing.T) {
		mockOperatorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(operator, nil)

		mockOperatorRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "password",
			NewPassword:     "a-new-password",
		}, operator.ID)
		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		mockOperatorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(operator, nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "a-new-password",
		}, operator.ID)
		assert.Error(t, err)
	})

	t.Run("operator not found", func(t *testing.T) {
		mockOperatorRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(operatorModel.Operator{}, nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "password",
			NewPassword:     "a-new-password",
		}, "missing-id")
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
