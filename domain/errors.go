package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserInactive       = errors.New("user account is inactive")
)

// Token errors
var (
	ErrTokenInvalid = errors.New("invalid or expired token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
)

// Policy errors
var (
	ErrPolicyExists   = errors.New("policy already exists")
	ErrPolicyNotFound = errors.New("policy not found")
)

// Email confirmation errors
var (
	ErrEmailAlreadyConfirmed   = errors.New("email is already confirmed")
	ErrConfirmationCodeExpired = errors.New("confirmation code has expired")
	ErrConfirmationCodeInvalid = errors.New("invalid confirmation code")
)
