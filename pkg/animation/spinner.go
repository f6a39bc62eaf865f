package animation

import (
	"fmt"
	"math"
	"time"
)

// DefaultStep is the rotation added on every frame, in radians.
const DefaultStep = 0.02

// SpinnerState is the Spinner's position in its two-state machine.
//
//	         Start()
//	Idle ─────────────► Spinning ──┐ tick: angle += Step,
//	 ▲                     │  ▲    │       onTick(angle),
//	 │       Stop()        │  └────┘       request next frame
//	 └─────────────────────┘
//	 cancel frame, angle = 0, onStop()
type SpinnerState int

const (
	// SpinnerIdle has angle 0 and no frame scheduled.
	SpinnerIdle SpinnerState = iota
	// SpinnerSpinning has exactly one frame scheduled.
	SpinnerSpinning
)

// String returns a human-readable representation of the state.
func (s SpinnerState) String() string {
	switch s {
	case SpinnerIdle:
		return "idle"
	case SpinnerSpinning:
		return "spinning"
	default:
		return fmt.Sprintf("SpinnerState(%d)", int(s))
	}
}

// Spinner advances a rotation angle by Step on every frame while active.
//
// A Spinner is not safe for concurrent use. Start, Stop and the frame
// callbacks must all run on the same goroutine (a [Loop] goroutine, or the
// goroutine pumping a [ManualScheduler]).
type Spinner struct {
	// Step is added to the angle on each tick. Zero means DefaultStep.
	Step float64

	frames FrameScheduler
	onTick func(angle float64)
	onStop func()

	state  SpinnerState
	angle  float64
	handle FrameHandle
	ticks  int
}

// NewSpinner creates an idle spinner. onTick receives the new angle after
// every tick; onStop runs once each time the spinner returns to idle. Either
// may be nil.
func NewSpinner(frames FrameScheduler, onTick func(angle float64), onStop func()) *Spinner {
	return &Spinner{
		frames: frames,
		onTick: onTick,
		onStop: onStop,
	}
}

// Start begins spinning from angle 0. It returns false if already spinning.
func (s *Spinner) Start() bool {
	return s.StartFrom(0)
}

// StartFrom begins spinning from the given angle. It returns false if
// already spinning.
func (s *Spinner) StartFrom(angle float64) bool {
	if s.state == SpinnerSpinning {
		return false
	}
	s.state = SpinnerSpinning
	s.angle = angle
	s.handle = s.frames.RequestFrame(s.tick)
	return true
}

// Stop cancels the pending frame, resets the angle to 0 and calls onStop.
// It returns false if the spinner was idle.
func (s *Spinner) Stop() bool {
	if s.state != SpinnerSpinning {
		return false
	}
	if s.handle != 0 {
		s.frames.CancelFrame(s.handle)
		s.handle = 0
	}
	s.state = SpinnerIdle
	s.angle = 0
	if s.onStop != nil {
		s.onStop()
	}
	return true
}

// State returns the current state.
func (s *Spinner) State() SpinnerState {
	return s.state
}

// Spinning reports whether the spinner is active.
func (s *Spinner) Spinning() bool {
	return s.state == SpinnerSpinning
}

// Angle returns the current rotation in radians, in [0, 2π) once spinning.
func (s *Spinner) Angle() float64 {
	return s.angle
}

// Ticks returns the number of ticks run since the spinner was created.
func (s *Spinner) Ticks() int {
	return s.ticks
}

// Pending returns the handle of the scheduled frame, or 0.
func (s *Spinner) Pending() FrameHandle {
	return s.handle
}

func (s *Spinner) step() float64 {
	if s.Step == 0 {
		return DefaultStep
	}
	return s.Step
}

func (s *Spinner) tick(_ time.Time) {
	s.handle = 0
	if s.state != SpinnerSpinning {
		return
	}
	s.angle += s.step()
	if s.angle >= 2*math.Pi {
		s.angle = math.Mod(s.angle, 2*math.Pi)
	}
	s.ticks++
	if s.onTick != nil {
		s.onTick(s.angle)
	}
	// onTick may have stopped or restarted the spinner.
	if s.state == SpinnerSpinning && s.handle == 0 {
		s.handle = s.frames.RequestFrame(s.tick)
	}
}
