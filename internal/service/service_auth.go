package service

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/itemkeeper/item-keeper/internal/config"
	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/itemkeeper/item-keeper/internal/store"
	"github.com/itemkeeper/item-keeper/internal/utils"
	"github.com/itemkeeper/item-keeper/models"
)

// minPasswordLength is the minimum accepted password length for signup,
// signin, and password change.
const minPasswordLength = 8

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates that the email is well-formed, the password has at least eight
// characters, and the name is non-empty; hashes the password with bcrypt; and
// delegates persistence to the UserRepository.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if any field fails validation.
//   - A wrapped storage error if the repository call fails (e.g. email already
//     taken — see store.ErrEmailAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, req models.SignupRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if !isValidEmail(req.Email) || len(req.Password) < minPasswordLength || req.Name == "" {
		log.Error().Str("email", req.Email).Msg("invalid signup data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: passwordHash,
	})
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It validates the request shape, looks up the account by email, and verifies
// the supplied password against the stored bcrypt digest.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if the email is malformed or the password too short.
//   - A wrapped storage error if the repository lookup fails (user absent —
//     see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match the stored digest.
//
// Callers mapping errors to transport responses must collapse the absent-user
// and wrong-password cases into a single credential failure so that signin
// does not act as an account-enumeration oracle.
func (a *authService) Login(ctx context.Context, req models.SigninRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if !isValidEmail(req.Email) || len(req.Password) < minPasswordLength {
		log.Error().Str("email", req.Email).Msg("invalid signin data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.VerifyPassword(req.Password, foundUser.PasswordHash) {
		log.Error().
			Int64("id", foundUser.UserID).
			Str("email", foundUser.Email).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// ChangePassword replaces the stored password digest for the given account.
//
// The same-password check runs before any hash comparison: a request where
// oldPassword equals newPassword always fails with ErrSamePassword, even when
// oldPassword does not match the stored digest.
//
// Returns the updated user record or:
//   - ErrInvalidDataProvided if either password fails validation.
//   - ErrSamePassword if the new password equals the old one.
//   - A wrapped storage error if the account is absent.
//   - ErrWrongPassword if oldPassword does not match the stored digest.
func (a *authService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) (models.User, error) {
	log := logger.FromContext(ctx)

	if oldPassword == "" || len(newPassword) < minPasswordLength {
		log.Error().Str("email", email).Msg("invalid password change data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if oldPassword == newPassword {
		log.Error().Str("email", email).Msg("new password equals the old one")
		return models.User{}, ErrSamePassword
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.VerifyPassword(oldPassword, foundUser.PasswordHash) {
		log.Error().Int64("id", foundUser.UserID).Str("email", email).Msg("wrong old password")
		return models.User{}, ErrWrongPassword
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	updatedUser, err := a.userRepository.UpdatePassword(ctx, email, newHash)
	if err != nil {
		log.Err(err).Str("email", email).Msg("password update ended with error")
		return models.User{}, fmt.Errorf("password update ended with error: %w", err)
	}

	return updatedUser, nil
}

// DeleteUser removes the account with the given email together with its
// items (cascaded at the storage level). The sequence counter key for the
// identity is intentionally left behind: item numbers are never reused,
// even across account re-registration.
//
// Returns the deleted user record or a wrapped storage error (account
// absent — see store.ErrNoUserWasFound).
func (a *authService) DeleteUser(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		log.Error().Msg("invalid user deletion data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	deletedUser, err := a.userRepository.DeleteUser(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user deletion ended with error")
		return models.User{}, fmt.Errorf("user deletion ended with error: %w", err)
	}

	return deletedUser, nil
}

// FindUsersByName returns all accounts with the given display name.
// Only public fields of the result should be exposed by callers.
func (a *authService) FindUsersByName(ctx context.Context, name string) ([]models.User, error) {
	log := logger.FromContext(ctx)

	users, err := a.userRepository.FindUsersByName(ctx, name)
	if err != nil {
		log.Err(err).Str("name", name).Msg("user search by name failed")
		return nil, fmt.Errorf("user search by name failed: %w", err)
	}

	return users, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim and the user email as the "sub" claim, and
// expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed,
// empty string) is normalised to ErrTokenIsExpiredOrInvalid so that callers do
// not need to inspect low-level JWT errors.
//
// Returns the decoded token model on success or ErrTokenIsExpiredOrInvalid on
// any validation failure.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// isValidEmail reports whether s is a single well-formed address without a
// display name.
func isValidEmail(s string) bool {
	if s == "" {
		return false
	}

	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
