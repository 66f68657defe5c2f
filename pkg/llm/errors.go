package llm

import "fmt"

// LoadError means the model could not be brought up at all: weight file
// missing, runtime process not running, or the runtime refused the model.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model load failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("model load failed: %s", e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

// GenerationError means the model was loaded but a generation call failed
// at runtime.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
