package ingestion

import "fmt"

// InputError represents a problem with the supplied file itself, as opposed
// to a downstream parsing or API failure.
type InputError struct {
	FileName string
	Message  string
}

func (e *InputError) Error() string {
	if e.FileName != "" {
		return fmt.Sprintf("invalid input %s: %s", e.FileName, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// ParseError represents a failure interpreting the parsing model's response.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
