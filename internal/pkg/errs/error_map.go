/*
Package errs provides custom error types and application-level error code constants.

This file maps every error code to its CustomError template.
*/
package errs

import "net/http"

// errorMap holds the template for each code. Messages containing a verb are
// formatted with the details passed to NewError.
var errorMap = map[int]CustomError{
	ErrInvalidParams:          {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrInvalidJSONFormat:      {Code: ErrInvalidJSONFormat, Message: "Unsupported message format."},
	ErrRateLimitExceeded:      {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrUnsupportedMessageType: {Code: ErrUnsupportedMessageType, Message: "Unsupported message type %q."},

	ErrUsernameTaken:     {Code: ErrUsernameTaken, Message: "Username %s is already taken"},
	ErrInvalidUsername:   {Code: ErrInvalidUsername, Message: "Username must not be empty"},
	ErrAlreadyIdentified: {Code: ErrAlreadyIdentified, Message: "You already joined as %s"},

	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
