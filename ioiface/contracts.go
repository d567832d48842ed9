package ioiface

// Input is the contract every input backend implements. Task is called
// once per main-loop iteration; it is responsible for polling hardware,
// debouncing if needed, and publishing events to the router on change.
type Input interface {
	Name() string
	Init() error
	Task()
}

// FeedbackReceiver is implemented by inputs that support feedback ingest
// (e.g. a controller with a rumble motor). Checked with a type assertion,
// the same "optional capability" convention used throughout the pipeline:
// a missing capability is never an error, the feature is just disabled for
// that backend.
type FeedbackReceiver interface {
	ApplyFeedback(fb OutputFeedback)
}

// Output is the contract every output backend implements. At most one
// registered Output may return a non-nil value from Core1Task(); the
// dual-core dispatcher binds the first one found in enumeration order and
// never runs any others (dualcore.SelectTask reports them with
// ErrMultipleCore1Tasks).
type Output interface {
	Name() string
	TargetID() TargetID
	Init() error
	Task()

	// ProfileCount, ActiveProfile, SetActiveProfile, ProfileName expose the
	// output's built-in profile table, selected by index.
	ProfileCount() int
	ActiveProfile() int
	SetActiveProfile(idx int) error
	ProfileName(idx int) string

	// Core1Task returns the timing-critical task this output wants to run
	// on Core 1, or nil if it has none.
	Core1Task() func()
}

// FeedbackSource is implemented by outputs that can report rumble/LED
// state pulled from the host. GetRumble is the scalar fallback used when
// the richer OutputFeedback struct is unavailable.
type FeedbackSource interface {
	GetFeedback() (OutputFeedback, bool)
}

// RumbleSource is the scalar fallback feedback contract.
type RumbleSource interface {
	GetRumble() (uint8, bool)
}

// PlayerLEDSource lets an output report its own idea of per-player LED
// color independent of OutputFeedback.
type PlayerLEDSource interface {
	GetPlayerLED(player uint8) (r, g, b uint8, ok bool)
}

// TriggerThresholdSource lets an output report a trigger deadzone/threshold.
// The profile engine does not read it: profile.Apply passes L2/R2 through
// unchanged.
type TriggerThresholdSource interface {
	TriggerThreshold() uint8
}
