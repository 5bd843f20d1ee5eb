// Package auth contains authentication use cases.
package auth

import (
	"context"
	"errors"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
	domainerror "github.com/pairfin/backend/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email    string
	Password string
}

// LoginUserOutput represents the result of a successful login.
type LoginUserOutput struct {
	User        *entity.User
	AccessToken string
}

// LoginUserUseCase handles user authentication.
type LoginUserUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	users adapter.UserRepository,
	passwords adapter.PasswordService,
	tokens adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
	}
}

// Execute authenticates the user and issues an access token. Unknown email
// and wrong password are indistinguishable to the caller.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := uc.passwords.Compare(user.PasswordHash, input.Password); err != nil {
		return nil, domainerror.ErrInvalidCredentials
	}

	token, err := uc.tokens.GenerateAccessToken(ctx, user.ID, user.PartnershipID, user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginUserOutput{
		User:        user,
		AccessToken: token,
	}, nil
}
