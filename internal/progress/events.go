// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event is a real-time update from a batch run.
// Events are emitted at deterministic points of the run lifecycle so that
// monitoring systems can follow progress without polling.
type Event struct {
	Type       EventType // What happened
	RunID      string    // Identifier of the batch run
	BatchIndex int       // Zero-based batch index, for batch and item events
	ItemIndex  int       // Original target index, for item events
	Target     string    // Target path, for item events
	Message    string    // Human-readable status message
	Timestamp  time.Time // When the event occurred
	Err        error     // Error, for EventItemFailed
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventRunStarted indicates a batch run has begun.
	EventRunStarted EventType = iota
	// EventBatchStarted indicates a batch of items is being dispatched.
	EventBatchStarted
	// EventItemCompleted indicates an item finished successfully.
	EventItemCompleted
	// EventItemFailed indicates an item's processing failed.
	EventItemFailed
	// EventRunCancelled indicates cancellation was honoured at a batch boundary.
	EventRunCancelled
	// EventRunCompleted indicates the run finished and the summary is available.
	EventRunCompleted
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventRunStarted:
		return "run started"
	case EventBatchStarted:
		return "batch started"
	case EventItemCompleted:
		return "item completed"
	case EventItemFailed:
		return "item failed"
	case EventRunCancelled:
		return "run cancelled"
	case EventRunCompleted:
		return "run completed"
	default:
		return "unknown"
	}
}

// Reporter is the interface for sending progress events.
// The engine emits events through this during execution.
type Reporter interface {
	// Report sends a progress event. Implementations should be non-blocking
	// and handle the case where the receiver might not be listening.
	Report(event Event)
	// Close signals that no more events will be sent and cleans up resources.
	Close()
}

// Listener receives progress events from a batch run.
type Listener interface {
	// OnEvent is called when a progress event is received.
	// Implementations should handle events quickly to avoid blocking
	// the reporting goroutine.
	OnEvent(event Event)
}

// NullReporter is a no-op implementation of Reporter.
// Used when progress reporting is not needed.
type NullReporter struct{}

// Report implements Reporter.Report by doing nothing.
func (nr *NullReporter) Report(_ Event) {
	// No-op
}

// Close implements Reporter.Close by doing nothing.
func (nr *NullReporter) Close() {
	// No-op
}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return &NullReporter{}
}
