package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidWallet   = errors.New("invalid wallet address")
	ErrInvalidSource   = errors.New("invalid failure source")
	ErrInvalidRequest  = errors.New("invalid request")
)
