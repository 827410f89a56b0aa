package usecase

import "errors"

// ErrAlreadyInWatchlist is returned by the repository when inserting a
// (user, symbol) pair that already exists.
var ErrAlreadyInWatchlist = errors.New("symbol already in watchlist")

// Mutation result messages. These exact strings are the contract the UI keys
// off, so they must stay stable.
const (
	MsgNotAuthenticated   = "Not authenticated"
	MsgInvalidPayload     = "Invalid payload"
	MsgAlreadyInWatchlist = "Already in watchlist"
	MsgAddFailed          = "Failed to add to watchlist"
	MsgRemoveFailed       = "Failed to remove from watchlist"
)
