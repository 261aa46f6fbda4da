package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists in the database.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrItemNotFound is returned when an update or delete targets an item
	// (identified by owner email and item number) that does not exist.
	ErrItemNotFound = errors.New("item was not found")

	// ErrItemAlreadyExists is returned when an INSERT violates the
	// (user_email, item_no) uniqueness constraint. Under a correctly working
	// sequence counter this indicates a duplicate item number was issued.
	ErrItemAlreadyExists = errors.New("item number already exists for this user")

	// ErrCounterUnavailable is returned when the sequence counter backing
	// store cannot be reached. Item creation must be aborted without
	// creating the item record.
	ErrCounterUnavailable = errors.New("sequence counter is unavailable")

	// ErrStoreUnavailable is returned when the relational store fails with a
	// transient, connection-class error.
	ErrStoreUnavailable = errors.New("store is unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. no columns to update).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
