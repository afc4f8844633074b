package skills

import "fmt"

// DictionaryError represents a failure loading or validating a skill dictionary
type DictionaryError struct {
	Source  string
	Message string
	Cause   error
}

func (e *DictionaryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("dictionary error (%s): %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("dictionary error (%s): %s", e.Source, e.Message)
}

func (e *DictionaryError) Unwrap() error {
	return e.Cause
}
