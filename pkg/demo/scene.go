package demo

import (
	"math/rand/v2"
	"time"
)

// Bounds is the drawing surface size in CSS pixels.
type Bounds struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Scene is the simulation behind a demo. All methods are called from the
// instance's loop goroutine.
type Scene interface {
	// Init sets up the initial state for a surface of the given size.
	Init(b Bounds, rng *rand.Rand)

	// Step advances the simulation by dt.
	Step(dt time.Duration)

	// Draw records the current state onto c.
	Draw(c *Canvas)
}

// Interactive is implemented by scenes that react to user input.
type Interactive interface {
	Input(ev Input)
}

// Input is a user event forwarded from the browser.
type Input struct {
	// Type is "keydown" or "keyup".
	Type string `json:"type"`

	// Key is the DOM KeyboardEvent.key value, e.g. "ArrowUp".
	Key string `json:"key"`
}
