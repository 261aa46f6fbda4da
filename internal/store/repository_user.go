package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/itemkeeper/item-keeper/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation, lookup, password change, and removal
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT uses the [createUser] prepared query which returns all columns
// via a RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → classified via [DB.wrapDBError].
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Email, user.Name, user.PasswordHash)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, r.db.wrapDBError(err)
		}
	}

	if err := row.Scan(&user.UserID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, err
	}

	return user, nil
}

// FindUserByEmail retrieves the user record whose Email matches the given one.
//
// Error handling:
//   - Empty result set ([sql.ErrNoRows]) → [ErrNoUserWasFound].
//   - Any other driver-level error → classified via [DB.wrapDBError].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByEmail, email)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error: row is nil")
		return models.User{}, r.db.wrapDBError(err)
	}

	if err := row.Scan(&foundUser.UserID, &foundUser.Email, &foundUser.Name, &foundUser.PasswordHash, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error: scanning error")
		return models.User{}, err
	}

	return foundUser, nil
}

// FindUsersByName retrieves all user records with the given display name.
// Returns an empty slice when no records match.
func (r *userRepository) FindUsersByName(ctx context.Context, name string) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findUsersByName, name)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUsersByName").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 10)

	for rows.Next() {
		var user models.User

		scanErr := rows.Scan(&user.UserID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.FindUsersByName").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*userRepository.FindUsersByName").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

// UpdatePassword replaces the stored bcrypt digest for the account with the
// given email and returns the updated record.
//
// Error handling:
//   - No matching account ([sql.ErrNoRows]) → [ErrNoUserWasFound].
//   - Any other driver-level error → classified via [DB.wrapDBError].
func (r *userRepository) UpdatePassword(ctx context.Context, email string, passwordHash string) (models.User, error) {
	log := logger.FromContext(ctx)

	var updatedUser models.User
	row := r.db.QueryRowContext(ctx, updateUserPassword, email, passwordHash)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error: row is nil")
		return models.User{}, r.db.wrapDBError(err)
	}

	if err := row.Scan(&updatedUser.UserID, &updatedUser.Email, &updatedUser.Name, &updatedUser.PasswordHash, &updatedUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error: scanning error")
		return models.User{}, err
	}

	return updatedUser, nil
}

// DeleteUser removes the account with the given email and returns the
// deleted record. Owned items are removed by the ON DELETE CASCADE
// constraint on the items table.
//
// Error handling:
//   - No matching account ([sql.ErrNoRows]) → [ErrNoUserWasFound].
//   - Any other driver-level error → classified via [DB.wrapDBError].
func (r *userRepository) DeleteUser(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var deletedUser models.User
	row := r.db.QueryRowContext(ctx, deleteUser, email)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: row is nil")
		return models.User{}, r.db.wrapDBError(err)
	}

	if err := row.Scan(&deletedUser.UserID, &deletedUser.Email, &deletedUser.Name, &deletedUser.PasswordHash, &deletedUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: scanning error")
		return models.User{}, err
	}

	return deletedUser, nil
}
