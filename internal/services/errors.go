package services

import "errors"

// Service errors translated by the HTTP layer into API responses.
var (
	// Session errors
	ErrNoSession = errors.New("no transaction data loaded")

	// Merchant errors
	ErrMerchantNotFound = errors.New("merchant not found")

	// Email errors
	ErrEmailNotConfigured = errors.New("email delivery not configured")
)
