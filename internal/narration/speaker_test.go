package narration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeakerCachesByExactText(t *testing.T) {
	synth := newFakeSynth()
	speaker := NewSpeaker(synth)

	audio1, err := speaker.Speak(context.Background(), "read-aloud-btn", "Tap to start!")
	require.NoError(t, err)
	audio2, err := speaker.Speak(context.Background(), "read-aloud-btn", "Tap to start!")
	require.NoError(t, err)

	assert.Equal(t, audio1, audio2)
	assert.Equal(t, []string{"Tap to start!"}, synth.callLog())

	// A different string, even a near-miss, synthesizes fresh.
	_, err = speaker.Speak(context.Background(), "read-aloud-btn", "Tap to start")
	require.NoError(t, err)
	assert.Len(t, synth.callLog(), 2)
}

func TestSpeakerRejectsConcurrentRequestForSameElement(t *testing.T) {
	synth := newFakeSynth()
	release := make(chan struct{})
	synth.blockOn["slow text"] = release
	speaker := NewSpeaker(synth)

	errs := make(chan error, 1)
	go func() {
		_, err := speaker.Speak(context.Background(), "el-1", "slow text")
		errs <- err
	}()

	require.Eventually(t, func() bool {
		return speaker.Busy("el-1")
	}, time.Second, 5*time.Millisecond)

	_, err := speaker.Speak(context.Background(), "el-1", "other text")
	assert.ErrorIs(t, err, ErrBusy)

	// A different element is not blocked.
	_, err = speaker.Speak(context.Background(), "el-2", "independent text")
	assert.NoError(t, err)

	close(release)
	require.NoError(t, <-errs)
	assert.False(t, speaker.Busy("el-1"))
}

func TestSpeakerSynthesisFailureIsNotCached(t *testing.T) {
	synth := newFakeSynth()
	synth.failOn["flaky"] = true
	speaker := NewSpeaker(synth)

	_, err := speaker.Speak(context.Background(), "el", "flaky")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrBusy))

	synth.mu.Lock()
	synth.failOn["flaky"] = false
	synth.mu.Unlock()

	audio, err := speaker.Speak(context.Background(), "el", "flaky")
	require.NoError(t, err)
	assert.NotEmpty(t, audio)
	assert.Len(t, synth.callLog(), 2)
}

func TestSpeakerForget(t *testing.T) {
	synth := newFakeSynth()
	speaker := NewSpeaker(synth)

	_, err := speaker.Speak(context.Background(), "el", "hello")
	require.NoError(t, err)
	speaker.Forget("hello")
	_, err = speaker.Speak(context.Background(), "el", "hello")
	require.NoError(t, err)

	assert.Len(t, synth.callLog(), 2)
}
