// Package config centralizes the tunable client and lobby parameters.
package config

import "time"

// Play field in logical units. Rendering scales it to fit the terminal.
const (
	FieldWidth  = 800
	FieldHeight = 600
)

// Max render resolution in terminal cells. Larger terminals get a centered,
// bordered play area so targets keep a sensible on-screen size.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Text that must fit on screen, in terminal cells.
const (
	MaxUsernameLength = 16
	ProgressBarMargin = 2
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	ShutdownWaitTimeout    = 15 * time.Second
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Blink period for prompts on menu screens.
const PromptBlinkMillis = 600
