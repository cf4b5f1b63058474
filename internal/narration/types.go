package narration

import (
	"context"
	"errors"
)

// Scenario is a spoken quiz prompt: one question read aloud, then each
// answer option in order.
type Scenario struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// UtteranceKind distinguishes the question from its options in play frames.
type UtteranceKind string

const (
	KindQuestion UtteranceKind = "question"
	KindOption   UtteranceKind = "option"
)

// Utterance is one synthesized clip handed to the player. OptionIndex is
// -1 for the question.
type Utterance struct {
	Kind        UtteranceKind `json:"kind"`
	OptionIndex int           `json:"optionIndex"`
	Text        string        `json:"text"`
	Audio       []byte        `json:"audio"`
}

// Synthesizer turns text into an audio clip. Implementations must honor
// context cancellation; a timeout is reported as an error.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Player delivers a clip to the listener and returns once playback has
// ended. The production player writes the clip over a WebSocket and blocks
// until the client acks the end of playback.
type Player interface {
	Play(ctx context.Context, u Utterance) error
}

// ErrBusy is returned when a clip for the same element is already in flight.
var ErrBusy = errors.New("narration: utterance already in flight for element")
