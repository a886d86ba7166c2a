package domain

import "errors"

var (
	ErrInvalidCodeFormat   = errors.New("code must be exactly 8 digits")
	ErrCodeNotFound        = errors.New("redemption code not found")
	ErrCodeAlreadyUsed     = errors.New("redemption code already used")
	ErrInsufficientBalance = errors.New("not enough points to redeem")
	ErrStoreUnavailable    = errors.New("store is inactive or does not exist")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUserNotFound        = errors.New("user not found")
	ErrStoreNotFound       = errors.New("store not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrSessionNotFound     = errors.New("session not found")
	ErrAlreadyMember       = errors.New("already a member of this store")
	ErrMembershipNotFound  = errors.New("not a member of this store")
	ErrClaimNotFound       = errors.New("claim not found")
	ErrClaimReviewed       = errors.New("claim already reviewed")
)
