// Package speech owns the single text-to-speech output of the program.
package speech

import (
	"context"
	"sync"

	"vozdalei/config"
)

const (
	DefaultLang = "pt-BR"
	DefaultRate = 0.9
)

type Utterance struct {
	Text string
	Lang string
	Rate float64 // 1.0 is the engine's normal speed
}

// Engine speaks one utterance, blocking until it ends or ctx is cancelled
type Engine interface {
	Name() string
	Speak(ctx context.Context, u Utterance) error
}

// Playback is a started utterance. Done is closed when it has finished,
// failed or been cancelled.
type Playback struct {
	Target string
	Done   <-chan struct{}
}

type utterance struct {
	target string
	cancel context.CancelFunc
	done   chan struct{}
}

// Slot allows at most one utterance at a time. Target identifies what is being
// read (a chat message, the simplified text) so the UI can mark it.
type Slot struct {
	engine Engine
	lang   string
	rate   float64

	mu      sync.Mutex
	current *utterance
}

// NewSlot returns a slot over engine. A nil engine gives a slot where every
// call is a no-op.
func NewSlot(engine Engine) *Slot {
	return &Slot{
		engine: engine,
		lang:   DefaultLang,
		rate:   DefaultRate,
	}
}

func (s *Slot) SetVoice(lang string, rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lang != "" {
		s.lang = lang
	}
	if rate > 0 {
		s.rate = rate
	}
}

func (s *Slot) Available() bool {
	return s.engine != nil
}

func (s *Slot) EngineName() string {
	if s.engine == nil {
		return ""
	}
	return s.engine.Name()
}

// Toggle stops target if it is the one speaking. Otherwise it stops whatever
// is speaking and starts target. ok is false when nothing was started.
func (s *Slot) Toggle(target, text string) (pb Playback, ok bool) {
	if s.engine == nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Speech] Warning: no speech engine available, ignoring request for %s", target)
		}
		return Playback{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		same := s.current.target == target
		s.current.cancel()
		s.current = nil
		if same {
			return Playback{}, false
		}
	}

	if text == "" {
		return Playback{}, false
	}

	ctx, cancel := context.WithCancel(context.Background())
	u := &utterance{target: target, cancel: cancel, done: make(chan struct{})}
	s.current = u

	go s.run(ctx, u, Utterance{Text: text, Lang: s.lang, Rate: s.rate})

	return Playback{Target: target, Done: u.done}, true
}

func (s *Slot) run(ctx context.Context, u *utterance, utt Utterance) {
	err := s.engine.Speak(ctx, utt)
	if err != nil && ctx.Err() == nil && config.DebugLog != nil {
		config.DebugLog.Printf("[Speech] %s failed for %s: %v", s.engine.Name(), u.target, err)
	}

	s.mu.Lock()
	if s.current == u {
		s.current = nil
	}
	s.mu.Unlock()

	u.cancel()
	close(u.done)
}

// Stop cancels the current utterance, if any
func (s *Slot) Stop() {
	if s.engine == nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Speech] Warning: no speech engine available, nothing to stop")
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.cancel()
		s.current = nil
	}
}

// Current returns the target being spoken, or "" when idle
func (s *Slot) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.target
}

func (s *Slot) Speaking(target string) bool {
	return target != "" && s.Current() == target
}
