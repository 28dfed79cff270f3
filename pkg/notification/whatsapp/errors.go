package whatsapp

import "errors"

var (
	// ErrInvalidRequest is returned when the request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrSendFailed is returned when message delivery fails
	ErrSendFailed = errors.New("message send failed")

	// ErrNetworkError is returned when there's a network communication error
	ErrNetworkError = errors.New("network error")

	// ErrUnauthorized is returned when the access token is invalid
	ErrUnauthorized = errors.New("unauthorized: invalid access token")

	// ErrInvalidRecipient is returned when the recipient number is not reachable
	ErrInvalidRecipient = errors.New("invalid recipient phone number")
)
