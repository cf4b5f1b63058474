package narration

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"little_learners_backend/pkg/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Channel drives one client's narration over a WebSocket. The client sends
// play/cancel/ended frames; the server streams synthesized clips and the
// client's ended acks stand in for playback-end events, so sequencing is
// driven by real playback rather than timers.
type Channel struct {
	conn   *websocket.Conn
	seq    *Sequencer
	spkr   *Speaker
	userID uint

	writeMu sync.Mutex

	mu     sync.Mutex
	nextID uint64
	acks   map[uint64]chan struct{}

	closed    chan struct{}
	closeOnce sync.Once
}

type inboundFrame struct {
	Type      string    `json:"type"`
	ID        uint64    `json:"id,omitempty"`
	ElementID string    `json:"elementId,omitempty"`
	Text      string    `json:"text,omitempty"`
	Scenario  *Scenario `json:"scenario,omitempty"`
}

type outboundFrame struct {
	Type        string        `json:"type"`
	ID          uint64        `json:"id,omitempty"`
	Kind        UtteranceKind `json:"kind,omitempty"`
	OptionIndex int           `json:"optionIndex"`
	Text        string        `json:"text,omitempty"`
	Audio       []byte        `json:"audio,omitempty"`
	Error       string        `json:"error,omitempty"`
}

func NewChannel(conn *websocket.Conn, synth Synthesizer, speaker *Speaker, userID uint) *Channel {
	ch := &Channel{
		conn:   conn,
		spkr:   speaker,
		userID: userID,
		acks:   make(map[uint64]chan struct{}),
		closed: make(chan struct{}),
	}
	ch.seq = NewSequencer(synth, ch)
	return ch
}

// Run reads frames until the connection drops, then cancels any narration
// still in flight. It blocks; callers run it per connection.
func (ch *Channel) Run() {
	defer ch.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-ch.closed
		cancel()
	}()
	go ch.pingLoop()

	ch.conn.SetReadLimit(maxMessageSize)
	ch.conn.SetReadDeadline(time.Now().Add(pongWait))
	ch.conn.SetPongHandler(func(string) error {
		ch.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := ch.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warn("narration socket closed unexpectedly",
					zap.Uint("userId", ch.userID), zap.Error(err))
			}
			ch.seq.Cancel()
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			continue
		}

		switch frame.Type {
		case "play":
			if frame.Scenario == nil {
				continue
			}
			done := ch.seq.Play(ctx, *frame.Scenario)
			go func() {
				select {
				case <-done:
					ch.writeFrame(outboundFrame{Type: "done", OptionIndex: -1})
				case <-ch.closed:
				}
			}()
		case "cancel":
			ch.seq.Cancel()
		case "speak":
			go ch.handleSpeak(ctx, frame)
		case "ended":
			ch.ack(frame.ID)
		}
	}
}

// handleSpeak serves single utterances over the same socket, for pages that
// already hold a narration connection.
func (ch *Channel) handleSpeak(ctx context.Context, frame inboundFrame) {
	audio, err := ch.spkr.Speak(ctx, frame.ElementID, frame.Text)
	if err != nil {
		ch.writeFrame(outboundFrame{Type: "speak_failed", ID: frame.ID, OptionIndex: -1, Error: err.Error()})
		return
	}
	ch.writeFrame(outboundFrame{Type: "clip", ID: frame.ID, Text: frame.Text, Audio: audio, OptionIndex: -1})
}

// Play implements Player: it ships the clip to the client and blocks until
// the client acks the end of playback.
func (ch *Channel) Play(ctx context.Context, u Utterance) error {
	ch.mu.Lock()
	ch.nextID++
	id := ch.nextID
	ack := make(chan struct{})
	ch.acks[id] = ack
	ch.mu.Unlock()

	defer func() {
		ch.mu.Lock()
		delete(ch.acks, id)
		ch.mu.Unlock()
	}()

	if err := ch.writeFrame(outboundFrame{
		Type:        "play",
		ID:          id,
		Kind:        u.Kind,
		OptionIndex: u.OptionIndex,
		Text:        u.Text,
		Audio:       u.Audio,
	}); err != nil {
		return err
	}

	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-ch.closed:
		return websocket.ErrCloseSent
	}
}

func (ch *Channel) ack(id uint64) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ack, ok := ch.acks[id]; ok {
		close(ack)
		delete(ch.acks, id)
	}
}

func (ch *Channel) writeFrame(frame outboundFrame) error {
	ch.writeMu.Lock()
	defer ch.writeMu.Unlock()
	ch.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return ch.conn.WriteJSON(frame)
}

func (ch *Channel) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ch.writeMu.Lock()
			ch.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := ch.conn.WriteMessage(websocket.PingMessage, nil)
			ch.writeMu.Unlock()
			if err != nil {
				ch.close()
				return
			}
		case <-ch.closed:
			return
		}
	}
}

func (ch *Channel) close() {
	ch.closeOnce.Do(func() {
		close(ch.closed)
		ch.conn.Close()
	})
}
