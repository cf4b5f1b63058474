package narration

import (
	"context"
	"sync"

	"little_learners_backend/pkg/logger"
	"little_learners_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// State is the sequencer's position in a scenario read-through.
type State int

const (
	Idle State = iota
	RequestingQuestion
	PlayingQuestion
	RequestingOption
	PlayingOption
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RequestingQuestion:
		return "requesting_question"
	case PlayingQuestion:
		return "playing_question"
	case RequestingOption:
		return "requesting_option"
	case PlayingOption:
		return "playing_option"
	case Done:
		return "done"
	}
	return "unknown"
}

// Sequencer reads a scenario aloud: question first, then options strictly in
// order. Option i+1 is not synthesized until option i's playback has ended.
// A failed synthesis skips that utterance and moves on. At most one sequence
// is active; starting a new one cancels the old one, and a generation counter
// keeps a cancelled sequence's late results from touching state.
type Sequencer struct {
	synth  Synthesizer
	player Player

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  State
	option int
}

func NewSequencer(synth Synthesizer, player Player) *Sequencer {
	return &Sequencer{synth: synth, player: player, state: Idle, option: -1}
}

// State reports the current state and, when in an option state, which option.
func (s *Sequencer) State() (State, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.option
}

// Play starts reading the scenario, cancelling any sequence in flight. The
// returned channel closes when this sequence finishes or is cancelled.
func (s *Sequencer) Play(ctx context.Context, scenario Scenario) <-chan struct{} {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state = RequestingQuestion
	s.option = -1
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.run(runCtx, gen, scenario)
	}()
	return done
}

// Cancel stops the active sequence, if any. Safe from any state.
func (s *Sequencer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = Idle
	s.option = -1
	monitoring.NarrationStepCounter.WithLabelValues("cancelled").Inc()
}

// setState advances the machine only if this run is still the current
// generation. Returns false when a newer Play or a Cancel superseded us.
func (s *Sequencer) setState(gen uint64, state State, option int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen || s.cancel == nil {
		return false
	}
	s.state = state
	s.option = option
	return true
}

func (s *Sequencer) run(ctx context.Context, gen uint64, scenario Scenario) {
	s.speak(ctx, gen, Utterance{Kind: KindQuestion, OptionIndex: -1, Text: scenario.Question},
		RequestingQuestion, PlayingQuestion, "question")

	for i, opt := range scenario.Options {
		if ctx.Err() != nil {
			return
		}
		s.speak(ctx, gen, Utterance{Kind: KindOption, OptionIndex: i, Text: opt},
			RequestingOption, PlayingOption, "option")
	}

	if s.setState(gen, Done, -1) {
		monitoring.NarrationStepCounter.WithLabelValues("done").Inc()
	}
}

// speak synthesizes then plays one utterance, blocking until playback ends.
// Synthesis failure skips the utterance; it never aborts the sequence.
func (s *Sequencer) speak(ctx context.Context, gen uint64, u Utterance, reqState, playState State, step string) {
	if !s.setState(gen, reqState, u.OptionIndex) {
		return
	}

	audio, err := s.synth.Synthesize(ctx, u.Text)
	if err != nil {
		if ctx.Err() == nil {
			logger.Log.Warn("narration synthesis failed, skipping utterance",
				zap.String("kind", string(u.Kind)),
				zap.Int("option", u.OptionIndex),
				zap.Error(err))
			monitoring.NarrationStepCounter.WithLabelValues("skipped").Inc()
		}
		return
	}
	u.Audio = audio

	if !s.setState(gen, playState, u.OptionIndex) {
		return
	}
	monitoring.NarrationStepCounter.WithLabelValues(step).Inc()

	if err := s.player.Play(ctx, u); err != nil && ctx.Err() == nil {
		logger.Log.Warn("narration playback failed",
			zap.String("kind", string(u.Kind)),
			zap.Int("option", u.OptionIndex),
			zap.Error(err))
	}
}
