package engine

import "fmt"

// ValidationError rejects caller input before anything is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PartialFailureError reports that a mission write went through but a later
// step of the same completion did not. The mission is not rolled back.
type PartialFailureError struct {
	MissionID string
	Stage     string
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("mission %s saved but %s update failed: %v", e.MissionID, e.Stage, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
