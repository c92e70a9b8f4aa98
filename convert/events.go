package convert

import "time"

// EventKind identifies the type of event emitted by a conversion.
type EventKind string

const (
	// EventConversionStarted is emitted when a conversion begins.
	EventConversionStarted EventKind = "conversion_started"

	// EventStageFinished is emitted when a pipeline stage completes.
	EventStageFinished EventKind = "stage_finished"

	// EventRepairAttempted is emitted when validation fails and the
	// program is re-emitted from the retained model.
	EventRepairAttempted EventKind = "repair_attempted"

	// EventConversionFinished is emitted when a conversion completes.
	EventConversionFinished EventKind = "conversion_finished"

	// EventConversionFailed is emitted when a conversion errors out.
	EventConversionFailed EventKind = "conversion_failed"
)

// String returns the string representation of the EventKind.
func (k EventKind) String() string {
	return string(k)
}

// Event is a structured record of conversion progress. Events are
// small; observers wanting the emitted program read the output file.
type Event struct {
	// Kind identifies the event type.
	Kind EventKind

	// ConversionID is the unique identifier for this conversion.
	ConversionID string

	// Stage is the pipeline stage this event refers to (empty for
	// conversion-level events).
	Stage Stage

	// Input is the flow document path.
	Input string

	// Time is when the event occurred.
	Time time.Time

	// Elapsed is the duration since the conversion or stage started.
	Elapsed time.Duration

	// Err carries the failure for EventConversionFailed.
	Err error
}

// NewEvent creates a new event with the current timestamp.
func NewEvent(kind EventKind, conversionID string) Event {
	return Event{
		Kind:         kind,
		ConversionID: conversionID,
		Time:         time.Now(),
	}
}

// WithStage sets the stage on the event.
func (e Event) WithStage(stage Stage) Event {
	e.Stage = stage
	return e
}

// WithElapsed sets the elapsed duration on the event.
func (e Event) WithElapsed(elapsed time.Duration) Event {
	e.Elapsed = elapsed
	return e
}

// EventHandler is a function type for handling events.
// Implementations can log, store, or forward events as needed.
type EventHandler func(Event)

// MultiEventHandler combines multiple handlers into one.
func MultiEventHandler(handlers ...EventHandler) EventHandler {
	return func(e Event) {
		for _, h := range handlers {
			if h != nil {
				h(e)
			}
		}
	}
}
