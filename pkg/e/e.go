package e

import "fmt"

var (
	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 404 Not Found
	ErrNotFound    = fmt.Errorf("not found")
	ErrInvalidPage = fmt.Errorf("invalid page")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrInvalidSort      = fmt.Errorf("invalid sort field")
	ErrMissingFields    = fmt.Errorf("required fields are missing")
	ErrInvalidEmail     = fmt.Errorf("invalid email")
	ErrPasswordMismatch = fmt.Errorf("passwords do not match")
	ErrPasswordTooShort = fmt.Errorf("password is too short")
	ErrUsernameTaken    = fmt.Errorf("username is already taken")
	ErrInvalidQuantity  = fmt.Errorf("quantity must be positive")
	ErrNoCartOwner      = fmt.Errorf("cart owner is not specified")

	// 415 Unsupported Media Type
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 401 Unauthorized
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
