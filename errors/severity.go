package errors

// Severity is the log level a denial or failure should be recorded at.
type Severity int

const (
	// SeverityWarn covers expected, low-suspicion failures: expired or
	// malformed tokens, wrong passwords, missing headers.
	SeverityWarn Severity = iota
	// SeverityError covers permission denials and server-side failures.
	SeverityError
)

// SeverityOf maps an error to the level it should be logged at. Non-AppError
// values are treated as server-side failures.
func SeverityOf(err error) Severity {
	appErr, ok := AsAppError(err)
	if !ok {
		return SeverityError
	}
	switch appErr.Code {
	case ErrCodePermissionDenied, ErrCodeInternal:
		return SeverityError
	default:
		return SeverityWarn
	}
}
