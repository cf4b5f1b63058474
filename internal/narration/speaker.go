package narration

import (
	"context"
	"sync"
)

// Speaker reads single utterances on demand, for buttons that speak one
// label. Clips are cached by exact text, and a second request for an element
// whose clip is still being produced or played is rejected instead of queued.
type Speaker struct {
	synth Synthesizer

	mu    sync.Mutex
	cache map[string][]byte
	busy  map[string]bool
}

func NewSpeaker(synth Synthesizer) *Speaker {
	return &Speaker{
		synth: synth,
		cache: make(map[string][]byte),
		busy:  make(map[string]bool),
	}
}

// Busy reports whether an utterance for the element is in flight.
func (s *Speaker) Busy(elementID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[elementID]
}

// Speak returns the audio clip for text, synthesizing on first use. A cache
// hit never touches the synthesizer. ErrBusy means the same element already
// has a request in flight.
func (s *Speaker) Speak(ctx context.Context, elementID, text string) ([]byte, error) {
	s.mu.Lock()
	if audio, ok := s.cache[text]; ok {
		s.mu.Unlock()
		return audio, nil
	}
	if s.busy[elementID] {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.busy[elementID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.busy, elementID)
		s.mu.Unlock()
	}()

	audio, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[text] = audio
	s.mu.Unlock()
	return audio, nil
}

// Forget drops a cached clip, used when the voice setting changes.
func (s *Speaker) Forget(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, text)
}
