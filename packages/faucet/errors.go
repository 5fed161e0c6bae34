package faucet

import "github.com/cockroachdb/errors"

var (
	// ErrAlreadyClaimed is returned if an identity claims a second time.
	ErrAlreadyClaimed = errors.New("user has already claimed from this faucet")
	// ErrInsufficientSolBalance is returned if the native vault can not cover a claim.
	ErrInsufficientSolBalance = errors.New("insufficient SOL balance in faucet")
	// ErrInsufficientTokenBalance is returned if the token vault can not cover a claim.
	ErrInsufficientTokenBalance = errors.New("insufficient token balance in faucet")
	// ErrUnauthorized is returned if somebody other than the administrator deposits.
	ErrUnauthorized = errors.New("caller is not the faucet administrator")
	// ErrAlreadyInitialized is returned if the faucet is initialized a second time.
	ErrAlreadyInitialized = errors.New("faucet is already initialized")
	// ErrNotInitialized is returned if an operation needs the faucet config before it was initialized.
	ErrNotInitialized = errors.New("faucet is not initialized")
	// ErrInsufficientCallerBalance is returned if the administrator can not cover a deposit.
	ErrInsufficientCallerBalance = errors.New("caller balance can not cover the deposit")
	// ErrInvalidTokenAccount is returned if a token account is missing, holds another mint or has another owner.
	ErrInvalidTokenAccount = errors.New("invalid token account")
	// ErrMintNotFound is returned if the faucet is initialized with an unknown mint.
	ErrMintNotFound = errors.New("mint not found")
	// ErrInvalidAmount is returned if a deposit of zero is requested.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)
