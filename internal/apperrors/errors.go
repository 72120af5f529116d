package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
var (
	// ErrIndexOutOfRange indicates that a position index does not address an
	// existing entry in the portfolio list.
	ErrIndexOutOfRange = errors.New("position index out of range")

	// ErrSettingNotFound indicates that a requested setting key has no stored value.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrEmptyTicker indicates that a position was constructed without a ticker symbol.
	ErrEmptyTicker = errors.New("ticker cannot be empty")

	// ErrNonPositiveShares indicates a share count of zero or less.
	ErrNonPositiveShares = errors.New("shares must be greater than zero")

	// ErrNegativeBuyPrice indicates a negative cost basis per share.
	ErrNegativeBuyPrice = errors.New("buy price cannot be negative")

	// ErrNoAPIToken indicates that no Finnhub API token is configured,
	// neither in the environment nor in the settings store.
	ErrNoAPIToken = errors.New("finnhub api token not configured")
)

// Data integrity errors represent inconsistencies or corruption in stored data.
var (
	// ErrCorruptState indicates that the persisted portfolio snapshot could not
	// be decoded. The service falls back to an empty portfolio when this occurs.
	ErrCorruptState = errors.New("corrupt portfolio snapshot")
)
