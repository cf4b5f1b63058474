package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"little_learners_backend/internal/config"
	"little_learners_backend/internal/util"
	"little_learners_backend/pkg/logger"
	"little_learners_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const speechCacheTTL = 24 * time.Hour

// SpeechService synthesizes narration audio against the configured
// text-to-speech endpoint. Clips are cached in redis by (voice, text), and
// identical concurrent requests share one upstream call. A timeout is a
// synthesis failure like any other; callers skip and move on.
type SpeechService struct {
	cfg    config.SpeechConfig
	client *http.Client
	redis  *redis.Client

	mu       sync.Mutex
	inflight map[string]*speechCall
}

type speechCall struct {
	done  chan struct{}
	audio []byte
	err   error
}

func NewSpeechService(cfg config.SpeechConfig, redisClient *redis.Client) *SpeechService {
	return &SpeechService{
		cfg:      cfg,
		client:   &http.Client{},
		redis:    redisClient,
		inflight: make(map[string]*speechCall),
	}
}

type speechRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

type speechResponse struct {
	AudioContent string `json:"audioContent"`
	Error        string `json:"error,omitempty"`
}

// Synthesize returns the audio clip for text in the configured voice.
func (s *SpeechService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return s.SynthesizeVoice(ctx, text, s.cfg.Voice)
}

func (s *SpeechService) SynthesizeVoice(ctx context.Context, text, voice string) ([]byte, error) {
	if text == "" {
		return nil, util.ErrSynthesisFailed
	}
	key := clipKey(voice, text)

	if audio := s.cachedClip(ctx, key); audio != nil {
		monitoring.SynthesisCounter.WithLabelValues("cache_hit").Inc()
		return audio, nil
	}

	s.mu.Lock()
	if call, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		select {
		case <-call.done:
			return call.audio, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &speechCall{done: make(chan struct{})}
	s.inflight[key] = call
	s.mu.Unlock()

	call.audio, call.err = s.synthesize(ctx, text, voice)
	close(call.done)

	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()

	if call.err == nil {
		s.storeClip(key, call.audio)
	}
	return call.audio, call.err
}

func (s *SpeechService) synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(speechRequest{Text: text, Voice: voice})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			monitoring.SynthesisCounter.WithLabelValues("timeout").Inc()
		} else {
			monitoring.SynthesisCounter.WithLabelValues("error").Inc()
		}
		logger.Log.Warn("speech synthesis request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", util.ErrSynthesisFailed, err)
	}
	defer resp.Body.Close()

	var parsed speechResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		monitoring.SynthesisCounter.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", util.ErrSynthesisFailed, err)
	}
	if resp.StatusCode != http.StatusOK || parsed.AudioContent == "" {
		monitoring.SynthesisCounter.WithLabelValues("error").Inc()
		logger.Log.Warn("speech synthesis returned no audio",
			zap.Int("status", resp.StatusCode),
			zap.String("error", parsed.Error))
		return nil, util.ErrSynthesisFailed
	}

	audio, err := base64.StdEncoding.DecodeString(parsed.AudioContent)
	if err != nil {
		monitoring.SynthesisCounter.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: bad audio encoding", util.ErrSynthesisFailed)
	}

	monitoring.SynthesisCounter.WithLabelValues("ok").Inc()
	return audio, nil
}

func clipKey(voice, text string) string {
	sum := sha256.Sum256([]byte(voice + "\x00" + text))
	return "speech:clip:" + hex.EncodeToString(sum[:])
}

func (s *SpeechService) cachedClip(ctx context.Context, key string) []byte {
	if s.redis == nil {
		return nil
	}
	audio, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return audio
}

func (s *SpeechService) storeClip(key string, audio []byte) {
	if s.redis == nil {
		return
	}
	// Detached context: caching must not fail with the request.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.redis.Set(ctx, key, audio, speechCacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache speech clip", zap.Error(err))
	}
}
