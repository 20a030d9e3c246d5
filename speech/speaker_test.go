package speech

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeEngine blocks until cancelled or released
type fakeEngine struct {
	mu      sync.Mutex
	spoken  []Utterance
	release chan struct{}
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{release: make(chan struct{})}
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Speak(ctx context.Context, u Utterance) error {
	f.mu.Lock()
	f.spoken = append(f.spoken, u)
	f.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.release:
		return nil
	}
}

func waitDone(t *testing.T, pb Playback) {
	t.Helper()
	select {
	case <-pb.Done:
	case <-time.After(2 * time.Second):
		t.Fatalf("utterance %s did not finish", pb.Target)
	}
}

func TestToggleSameTargetStops(t *testing.T) {
	slot := NewSlot(newFakeEngine())

	pb, ok := slot.Toggle("chat:1", "Olá")
	if !ok {
		t.Fatal("expected first toggle to start speaking")
	}
	if slot.Current() != "chat:1" {
		t.Errorf("current: got %q", slot.Current())
	}

	if _, ok := slot.Toggle("chat:1", "Olá"); ok {
		t.Error("second toggle on the same target should not start anything")
	}
	if slot.Current() != "" {
		t.Errorf("expected idle, got %q", slot.Current())
	}
	waitDone(t, pb)
}

func TestToggleOtherTargetReplaces(t *testing.T) {
	engine := newFakeEngine()
	slot := NewSlot(engine)

	first, _ := slot.Toggle("chat:a", "primeira")
	second, ok := slot.Toggle("chat:b", "segunda")
	if !ok {
		t.Fatal("expected B to start")
	}

	waitDone(t, first)
	// A finishing late must not clear B's marker
	if slot.Current() != "chat:b" {
		t.Errorf("current: got %q, want chat:b", slot.Current())
	}

	close(engine.release)
	waitDone(t, second)
	if slot.Current() != "" {
		t.Errorf("expected idle after completion, got %q", slot.Current())
	}
}

func TestUtteranceVoice(t *testing.T) {
	engine := newFakeEngine()
	close(engine.release)
	slot := NewSlot(engine)

	pb, _ := slot.Toggle("simplify", "texto")
	waitDone(t, pb)

	slot.SetVoice("pt-PT", 1.1)
	pb, _ = slot.Toggle("simplify", "outro")
	waitDone(t, pb)

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if len(engine.spoken) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(engine.spoken))
	}
	if u := engine.spoken[0]; u.Lang != "pt-BR" || u.Rate != 0.9 || u.Text != "texto" {
		t.Errorf("default voice: got %+v", u)
	}
	if u := engine.spoken[1]; u.Lang != "pt-PT" || u.Rate != 1.1 {
		t.Errorf("custom voice: got %+v", u)
	}
}

func TestStop(t *testing.T) {
	slot := NewSlot(newFakeEngine())
	pb, _ := slot.Toggle("chat:1", "Olá")

	slot.Stop()
	if slot.Current() != "" {
		t.Errorf("expected idle after Stop, got %q", slot.Current())
	}
	waitDone(t, pb)
}

func TestNilEngineIsNoop(t *testing.T) {
	slot := NewSlot(nil)

	if slot.Available() {
		t.Error("nil engine should not be available")
	}
	if _, ok := slot.Toggle("chat:1", "Olá"); ok {
		t.Error("toggle should do nothing without an engine")
	}
	slot.Stop()
	if slot.Current() != "" {
		t.Errorf("expected idle, got %q", slot.Current())
	}
}

func TestExecEngineArgs(t *testing.T) {
	tests := []struct {
		program string
		utt     Utterance
		want    []string
	}{
		{"espeak-ng", Utterance{Lang: "pt-BR", Rate: 0.9}, []string{"-v", "pt-br", "-s", "157", "--stdin"}},
		{"espeak", Utterance{Rate: 1}, []string{"-v", "pt-br", "-s", "175", "--stdin"}},
		{"say", Utterance{Lang: "pt-BR", Rate: 2}, []string{"-r", "350", "-f", "-"}},
	}

	for _, tt := range tests {
		t.Run(tt.program, func(t *testing.T) {
			e := &ExecEngine{program: tt.program}
			got := e.args(tt.utt)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
