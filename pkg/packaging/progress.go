// SPDX-License-Identifier: MPL-2.0

package packaging

import (
	"github.com/google/uuid"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// Progress event kinds, in the order a successful build emits them.
const (
	EventValidated       EventKind = "validated"
	EventVehicleStaged   EventKind = "vehicle_staged"
	EventArchiveStarted  EventKind = "archive_started"
	EventArchiveFinished EventKind = "archive_finished"
)

type (
	// EventKind names a build step.
	EventKind string

	// ProgressEvent reports a finished build step. For EventVehicleStaged,
	// Index counts from 1 to Total.
	ProgressEvent struct {
		BuildID uuid.UUID
		Kind    EventKind
		Vehicle types.VehicleID
		Index   int
		Total   int
		// Path is the final archive path for the archive events.
		Path types.FilesystemPath
	}

	// ProgressFunc receives progress events. It is called on the goroutine
	// running the build and should return quickly.
	ProgressFunc func(ProgressEvent)
)

func (f ProgressFunc) emit(ev ProgressEvent) {
	if f != nil {
		f(ev)
	}
}
