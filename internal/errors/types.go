package errors

import "errors"

var (
	ErrDockerUnavailable    = errors.New("docker daemon unreachable")
	ErrImageNotFound        = errors.New("image not found")
	ErrEditionInvalid       = errors.New("unknown edition")
	ErrDisplayServerMissing = errors.New("nested display server missing")
	ErrDisplayFailed        = errors.New("display session failed")
	ErrRuntimeFailed        = errors.New("container runtime operation failed")
	ErrConfigInvalid        = errors.New("configuration invalid")
)

type LaunchError struct {
	Type        error
	Context     string
	Cause       string
	Suggestion  string
	OriginalErr error
}

func (e *LaunchError) Error() string {
	return e.OriginalErr.Error()
}

func (e *LaunchError) Unwrap() error {
	return e.OriginalErr
}

func (e *LaunchError) Is(target error) bool {
	return e.Type == target
}

func NewLaunchError(errorType error, context, cause, suggestion string, originalErr error) *LaunchError {
	return &LaunchError{
		Type:        errorType,
		Context:     context,
		Cause:       cause,
		Suggestion:  suggestion,
		OriginalErr: originalErr,
	}
}

func NewDockerError(context, cause, suggestion string, originalErr error) *LaunchError {
	return NewLaunchError(ErrDockerUnavailable, context, cause, suggestion, originalErr)
}

func NewImageError(context, cause, suggestion string, originalErr error) *LaunchError {
	return NewLaunchError(ErrImageNotFound, context, cause, suggestion, originalErr)
}

func NewEditionError(context, cause, suggestion string, originalErr error) *LaunchError {
	return NewLaunchError(ErrEditionInvalid, context, cause, suggestion, originalErr)
}

func NewDisplayServerError(context, cause, suggestion string, originalErr error) *LaunchError {
	return NewLaunchError(ErrDisplayServerMissing, context, cause, suggestion, originalErr)
}

func NewDisplayError(context, cause, suggestion string, originalErr error) *LaunchError {
	return NewLaunchError(ErrDisplayFailed, context, cause, suggestion, originalErr)
}

func NewRuntimeError(context, cause, suggestion string, originalErr error) *LaunchError {
	return NewLaunchError(ErrRuntimeFailed, context, cause, suggestion, originalErr)
}

func NewConfigError(context, cause, suggestion string, originalErr error) *LaunchError {
	return NewLaunchError(ErrConfigInvalid, context, cause, suggestion, originalErr)
}
