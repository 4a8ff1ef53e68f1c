package umls

import (
	"errors"
	"fmt"
	"strings"

	dsql "github.com/sanjeeku/ddbiolib/dialect/sql"
)

// Standard sentinel errors.
var (
	// ErrEmptyRelation is returned by Graph when called with an empty
	// relation label.
	ErrEmptyRelation = errors.New("umls: relation must not be empty")

	// ErrInvalidConfig is matched by every ConfigError.
	ErrInvalidConfig = errors.New("umls: invalid config")
)

// ConnectionError represents a failure to open, reach or authenticate with
// the data source.
type ConnectionError struct {
	Dialect string
	Err     error
}

// Error returns the error string.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("umls: connecting to %s database: %v", e.Dialect, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NewConnectionError returns a new ConnectionError.
func NewConnectionError(dialect string, err error) *ConnectionError {
	return &ConnectionError{Dialect: dialect, Err: err}
}

// IsConnectionError reports whether err is a ConnectionError, or a
// QueryError caused by the connection being unusable.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConnectionError
	if errors.As(err, &e) {
		return true
	}
	var qe *QueryError
	return errors.As(err, &qe) && dsql.IsConnectionError(qe.Err)
}

// QueryError wraps a failure to run or read the relation query.
type QueryError struct {
	Relation string // Relation label being loaded
	Err      error  // Underlying error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	return fmt.Sprintf("umls: querying relation %q: %v", e.Relation, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError returns a new QueryError.
func NewQueryError(relation string, err error) *QueryError {
	return &QueryError{Relation: relation, Err: err}
}

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}

// ParseError reports a group definition line that does not have exactly
// four fields.
type ParseError struct {
	Path   string // File name, empty when parsing a reader
	Line   int    // 1-based line number
	Fields int    // Number of fields found
}

// Error returns the error string.
func (e *ParseError) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.Path != "" {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return fmt.Sprintf("umls: parsing semantic groups: %s: expected %d fields, got %d", loc, groupFields, e.Fields)
}

// NewParseError returns a new ParseError.
func NewParseError(path string, line, fields int) *ParseError {
	return &ParseError{Path: path, Line: line, Fields: fields}
}

// IsParseError returns true if the error is a ParseError.
func IsParseError(err error) bool {
	if err == nil {
		return false
	}
	var e *ParseError
	return errors.As(err, &e)
}

// ConfigError represents an invalid configuration option.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error returns the error string.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("umls: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("umls: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError returns a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "umls: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("umls: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
