package adapter

import (
	"errors"
	"fmt"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/dbcapabilities"
)

// Standard adapter errors
var (
	// ErrUnsupportedConstruct is returned when a request uses a SQL
	// construct the store has no translation for
	ErrUnsupportedConstruct = errors.New("construct not supported by this store")

	// ErrModeViolation is returned when a statement's kind does not match
	// the access mode of the transaction it runs in
	ErrModeViolation = errors.New("statement kind does not match session access mode")

	// ErrInvalidQuery is returned when a request is structurally invalid
	ErrInvalidQuery = errors.New("invalid query")

	// ErrConnectionClosed is returned when attempting to use a closed connection
	ErrConnectionClosed = errors.New("connection is closed")

	// ErrConnectionFailed is returned when a connection attempt fails
	ErrConnectionFailed = errors.New("connection failed")

	// ErrInvalidConfiguration is returned when the configuration is invalid
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrAdapterNotFound is returned when an adapter is not registered
	ErrAdapterNotFound = errors.New("adapter not found")

	// ErrTableNotFound is returned when a table is not found
	ErrTableNotFound = errors.New("table not found")
)

// StoreError wraps store-specific errors with additional context.
// This provides a consistent error structure across all store types.
type StoreError struct {
	StoreType dbcapabilities.DatabaseID
	Operation string
	Cause     error
	Context   map[string]interface{}
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if len(e.Context) > 0 {
		return fmt.Sprintf("[%s] %s: %v (context: %v)", e.StoreType, e.Operation, e.Cause, e.Context)
	}
	return fmt.Sprintf("[%s] %s: %v", e.StoreType, e.Operation, e.Cause)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error.
func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewStoreError creates a new StoreError.
func NewStoreError(storeType dbcapabilities.DatabaseID, operation string, cause error) *StoreError {
	return &StoreError{
		StoreType: storeType,
		Operation: operation,
		Cause:     cause,
		Context:   make(map[string]interface{}),
	}
}

// WithContext adds context to a StoreError.
func (e *StoreError) WithContext(key string, value interface{}) *StoreError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// UnsupportedConstructError is returned when a request uses a construct
// the translator has no mapping for. The construct is classified at
// translation time so bad SQL never reaches the store.
type UnsupportedConstructError struct {
	StoreType dbcapabilities.DatabaseID
	Construct string
	Reason    string
}

// Error implements the error interface.
func (e *UnsupportedConstructError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s does not support %s: %s", e.StoreType, e.Construct, e.Reason)
	}
	return fmt.Sprintf("%s does not support %s", e.StoreType, e.Construct)
}

// Is checks if the error is ErrUnsupportedConstruct.
func (e *UnsupportedConstructError) Is(target error) bool {
	return errors.Is(target, ErrUnsupportedConstruct)
}

// NewUnsupportedConstructError creates a new UnsupportedConstructError.
func NewUnsupportedConstructError(storeType dbcapabilities.DatabaseID, construct string, reason string) *UnsupportedConstructError {
	return &UnsupportedConstructError{
		StoreType: storeType,
		Construct: construct,
		Reason:    reason,
	}
}

// ModeViolationError is returned when a write statement is issued inside a
// read-only transaction scope, or a read statement inside a write scope.
type ModeViolationError struct {
	Mode AccessMode
	Kind StatementKind
}

// Error implements the error interface.
func (e *ModeViolationError) Error() string {
	return fmt.Sprintf("%s statement issued in %s transaction scope", e.Kind, e.Mode)
}

// Is checks if the error is ErrModeViolation.
func (e *ModeViolationError) Is(target error) bool {
	return errors.Is(target, ErrModeViolation)
}

// NewModeViolationError creates a new ModeViolationError.
func NewModeViolationError(mode AccessMode, kind StatementKind) *ModeViolationError {
	return &ModeViolationError{Mode: mode, Kind: kind}
}

// ConnectionError is returned when a connection error occurs.
type ConnectionError struct {
	StoreType dbcapabilities.DatabaseID
	Host      string
	Port      int
	Cause     error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s at %s:%d: %v", e.StoreType, e.Host, e.Port, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is ErrConnectionFailed.
func (e *ConnectionError) Is(target error) bool {
	if errors.Is(target, ErrConnectionFailed) {
		return true
	}
	return errors.Is(e.Cause, target)
}

// NewConnectionError creates a new ConnectionError.
func NewConnectionError(storeType dbcapabilities.DatabaseID, host string, port int, cause error) *ConnectionError {
	return &ConnectionError{
		StoreType: storeType,
		Host:      host,
		Port:      port,
		Cause:     cause,
	}
}

// ConfigurationError is returned when a configuration error occurs.
type ConfigurationError struct {
	StoreType dbcapabilities.DatabaseID
	Field     string
	Reason    string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for %s: field '%s': %s", e.StoreType, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid configuration for %s: %s", e.StoreType, e.Reason)
}

// Is checks if the error is ErrInvalidConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return errors.Is(target, ErrInvalidConfiguration)
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(storeType dbcapabilities.DatabaseID, field string, reason string) *ConfigurationError {
	return &ConfigurationError{
		StoreType: storeType,
		Field:     field,
		Reason:    reason,
	}
}

// WrapError wraps an error with store context.
// If the error is already a StoreError, it returns it as-is.
func WrapError(storeType dbcapabilities.DatabaseID, operation string, err error) error {
	if err == nil {
		return nil
	}

	// Don't double-wrap
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return err
	}

	return NewStoreError(storeType, operation, err)
}

// IsUnsupportedConstruct checks if an error indicates an untranslatable construct.
func IsUnsupportedConstruct(err error) bool {
	return errors.Is(err, ErrUnsupportedConstruct)
}

// IsModeViolation checks if an error is a mode violation.
func IsModeViolation(err error) bool {
	return errors.Is(err, ErrModeViolation)
}

// IsConnectionError checks if an error is a connection error.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}
