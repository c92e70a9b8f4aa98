package convert

import "fmt"

// Stage names the pipeline stage an error or event originated in.
type Stage string

const (
	StageLoad     Stage = "load"
	StageGraph    Stage = "graph"
	StageClassify Stage = "classify"
	StageState    Stage = "state"
	StageGuard    Stage = "guard"
	StageEmit     Stage = "emit"
	StageValidate Stage = "validate"
	StageWrite    Stage = "write"
)

// Error wraps the first root cause of a failed conversion with the
// stage it occurred in.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("conversion failed at %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
