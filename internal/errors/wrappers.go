package errors

import "fmt"

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithPath(path).
		WithContext("operation", operation)
}

// WrapRenameError wraps a failed rename of oldPath to newPath
func WrapRenameError(oldPath, newPath string, cause error) *BaseError {
	message := fmt.Sprintf("failed to rename '%s' to '%s'", oldPath, newPath)
	return Wrap(FileSystemErrorCode, message, cause).
		WithPath(oldPath).
		WithContext("operation", "rename").
		WithContext("destination", newPath)
}

// WrapPatternError wraps a regular expression that failed to compile
func WrapPatternError(pattern string, cause error) *BaseError {
	message := fmt.Sprintf("failed to compile pattern '%s'", pattern)
	return Wrap(PatternErrorCode, message, cause).
		WithContext("pattern", pattern).
		WithSuggestion("Patterns use RE2 syntax; lookarounds and backreferences are not supported")
}

// NewUsageError reports a missing or malformed command line
func NewUsageError(format string, args ...interface{}) *BaseError {
	return Newf(UsageErrorCode, format, args...)
}
