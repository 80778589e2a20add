package service

import "errors"

// Sentinel errors forming the caller-visible taxonomy. Handlers map each to
// a distinct status so clients can tell a fixable request from a retryable
// one from a gone artifact.
var (
	ErrJobNotFound      = errors.New("job not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrNotReady         = errors.New("render not ready")
	ErrOutputReclaimed  = errors.New("render output no longer available")
)

// ValidationError is a synchronously detected bad request: unsupported
// format, unknown output encoding, malformed properties. No job or
// computation is created when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
