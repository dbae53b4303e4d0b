package apperror

// AppError is a custom error type that includes an HTTP status code and a
// translation key for the client-facing message.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Key     string // Translation key resolved at the boundary
	Message string // English fallback message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code, message key and fallback message.
func New(code int, key, message string) *AppError {
	return &AppError{
		Code:    code,
		Key:     key,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, key, message string) *AppError {
	return &AppError{
		Code:    code,
		Key:     key,
		Message: message,
		Err:     err,
	}
}
