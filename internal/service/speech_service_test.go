package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"little_learners_backend/internal/config"
	"little_learners_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpeechServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func speechConfig(url string) config.SpeechConfig {
	return config.SpeechConfig{
		BaseURL:        url,
		Voice:          "alloy",
		TimeoutSeconds: 1,
	}
}

func TestSynthesizeReturnsDecodedAudio(t *testing.T) {
	var gotReq speechRequest
	server := newSpeechServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(speechResponse{
			AudioContent: base64.StdEncoding.EncodeToString([]byte("clip-bytes")),
		})
	})

	svc := NewSpeechService(speechConfig(server.URL), nil)
	audio, err := svc.Synthesize(context.Background(), "Hello there!")
	require.NoError(t, err)
	assert.Equal(t, []byte("clip-bytes"), audio)
	assert.Equal(t, "Hello there!", gotReq.Text)
	assert.Equal(t, "alloy", gotReq.Voice)
}

func TestSynthesizeUpstreamErrorIsSynthesisFailure(t *testing.T) {
	server := newSpeechServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(speechResponse{Error: "voice unavailable"})
	})

	svc := NewSpeechService(speechConfig(server.URL), nil)
	_, err := svc.Synthesize(context.Background(), "Hello")
	assert.ErrorIs(t, err, util.ErrSynthesisFailed)
}

func TestSynthesizeTimeoutIsSynthesisFailure(t *testing.T) {
	server := newSpeechServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(3 * time.Second)
	})

	svc := NewSpeechService(speechConfig(server.URL), nil)
	start := time.Now()
	_, err := svc.Synthesize(context.Background(), "Hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrSynthesisFailed)
	assert.Less(t, time.Since(start), 2500*time.Millisecond)
}

func TestSynthesizeEmptyTextFails(t *testing.T) {
	svc := NewSpeechService(speechConfig("http://127.0.0.1:0"), nil)
	_, err := svc.Synthesize(context.Background(), "")
	assert.ErrorIs(t, err, util.ErrSynthesisFailed)
}

func TestConcurrentIdenticalRequestsSynthesizeOnce(t *testing.T) {
	var calls int64
	server := newSpeechServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(speechResponse{
			AudioContent: base64.StdEncoding.EncodeToString([]byte("shared")),
		})
	})

	svc := NewSpeechService(speechConfig(server.URL), nil)

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Synthesize(context.Background(), "same text")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestSynthesizeMissingAudioIsFailure(t *testing.T) {
	server := newSpeechServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(speechResponse{})
	})

	svc := NewSpeechService(speechConfig(server.URL), nil)
	_, err := svc.Synthesize(context.Background(), "Hello")
	assert.True(t, errors.Is(err, util.ErrSynthesisFailed))
}
