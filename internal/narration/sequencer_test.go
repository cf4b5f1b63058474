package narration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSynth struct {
	mu      sync.Mutex
	calls   []string
	failOn  map[string]bool
	blockOn map[string]chan struct{}
}

func newFakeSynth() *fakeSynth {
	return &fakeSynth{failOn: make(map[string]bool), blockOn: make(map[string]chan struct{})}
}

func (f *fakeSynth) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	block := f.blockOn[text]
	fail := f.failOn[text]
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail {
		return nil, errors.New("synthesis unavailable")
	}
	return []byte("clip:" + text), nil
}

func (f *fakeSynth) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

type fakePlayer struct {
	mu     sync.Mutex
	played []Utterance
}

func (f *fakePlayer) Play(ctx context.Context, u Utterance) error {
	f.mu.Lock()
	f.played = append(f.played, u)
	f.mu.Unlock()
	return nil
}

func (f *fakePlayer) playedTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.played))
	for i, u := range f.played {
		out[i] = u.Text
	}
	return out
}

var quiz = Scenario{
	Question: "Which one is a need?",
	Options:  []string{"A new toy", "Clean water", "Candy"},
}

func TestSequencerPlaysQuestionThenOptionsInOrder(t *testing.T) {
	synth := newFakeSynth()
	player := &fakePlayer{}
	seq := NewSequencer(synth, player)

	done := seq.Play(context.Background(), quiz)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sequence did not finish")
	}

	want := []string{"Which one is a need?", "A new toy", "Clean water", "Candy"}
	assert.Equal(t, want, synth.callLog())
	assert.Equal(t, want, player.playedTexts())

	state, option := seq.State()
	assert.Equal(t, Done, state)
	assert.Equal(t, -1, option)

	played := player.played
	require.Len(t, played, 4)
	assert.Equal(t, KindQuestion, played[0].Kind)
	assert.Equal(t, -1, played[0].OptionIndex)
	for i := 1; i < 4; i++ {
		assert.Equal(t, KindOption, played[i].Kind)
		assert.Equal(t, i-1, played[i].OptionIndex)
	}
}

func TestSequencerSkipsFailedSynthesis(t *testing.T) {
	synth := newFakeSynth()
	synth.failOn["Clean water"] = true
	player := &fakePlayer{}
	seq := NewSequencer(synth, player)

	done := seq.Play(context.Background(), quiz)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sequence did not finish")
	}

	// Every utterance is attempted; only the failed one is missing from playback.
	assert.Equal(t, []string{"Which one is a need?", "A new toy", "Clean water", "Candy"}, synth.callLog())
	assert.Equal(t, []string{"Which one is a need?", "A new toy", "Candy"}, player.playedTexts())

	state, _ := seq.State()
	assert.Equal(t, Done, state)
}

func TestSequencerSkipsFailedQuestionAndStillReadsOptions(t *testing.T) {
	synth := newFakeSynth()
	synth.failOn["Which one is a need?"] = true
	player := &fakePlayer{}
	seq := NewSequencer(synth, player)

	<-seq.Play(context.Background(), quiz)

	assert.Equal(t, []string{"A new toy", "Clean water", "Candy"}, player.playedTexts())
}

func TestSequencerCancelStopsSequence(t *testing.T) {
	synth := newFakeSynth()
	release := make(chan struct{})
	synth.blockOn["A new toy"] = release
	player := &fakePlayer{}
	seq := NewSequencer(synth, player)

	done := seq.Play(context.Background(), quiz)

	// Wait until the first option's synthesis is in flight.
	require.Eventually(t, func() bool {
		return len(synth.callLog()) == 2
	}, time.Second, 5*time.Millisecond)

	seq.Cancel()
	close(release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cancelled sequence did not stop")
	}

	assert.Equal(t, []string{"Which one is a need?"}, player.playedTexts())
	state, _ := seq.State()
	assert.Equal(t, Idle, state)
}

func TestSequencerNewPlaySupersedesOldOne(t *testing.T) {
	synth := newFakeSynth()
	release := make(chan struct{})
	synth.blockOn["Which one is a need?"] = release
	player := &fakePlayer{}
	seq := NewSequencer(synth, player)

	first := seq.Play(context.Background(), quiz)
	require.Eventually(t, func() bool {
		return len(synth.callLog()) == 1
	}, time.Second, 5*time.Millisecond)

	second := seq.Play(context.Background(), Scenario{
		Question: "What color is the sky?",
		Options:  []string{"Blue"},
	})
	close(release)

	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatal("second sequence did not finish")
	}
	select {
	case <-first:
	case <-time.After(time.Second):
		t.Fatal("first sequence did not stop")
	}

	// Nothing from the superseded sequence reaches the player.
	assert.Equal(t, []string{"What color is the sky?", "Blue"}, player.playedTexts())

	state, _ := seq.State()
	assert.Equal(t, Done, state)
}

func TestSequencerEmptyOptions(t *testing.T) {
	synth := newFakeSynth()
	player := &fakePlayer{}
	seq := NewSequencer(synth, player)

	<-seq.Play(context.Background(), Scenario{Question: "Just a question"})

	assert.Equal(t, []string{"Just a question"}, player.playedTexts())
	state, _ := seq.State()
	assert.Equal(t, Done, state)
}
