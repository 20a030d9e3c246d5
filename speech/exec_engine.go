package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// candidates are tried in order by DetectEngine
var candidates = []string{"espeak-ng", "espeak", "say"}

// baseWPM is the normal speaking rate of espeak and say
const baseWPM = 175

// ExecEngine speaks by running a local text-to-speech program
type ExecEngine struct {
	program string
	path    string
}

var ErrNoEngine = errors.New("no text-to-speech program found (tried espeak-ng, espeak, say)")

// DetectEngine returns an engine for preferred if set, otherwise for the first
// known program found in PATH.
func DetectEngine(preferred string) (*ExecEngine, error) {
	if preferred != "" {
		path, err := exec.LookPath(preferred)
		if err != nil {
			return nil, fmt.Errorf("speech engine %q not found: %w", preferred, err)
		}
		return &ExecEngine{program: preferred, path: path}, nil
	}

	for _, program := range candidates {
		if path, err := exec.LookPath(program); err == nil {
			return &ExecEngine{program: program, path: path}, nil
		}
	}
	return nil, ErrNoEngine
}

func (e *ExecEngine) Name() string {
	return e.program
}

func (e *ExecEngine) Speak(ctx context.Context, u Utterance) error {
	cmd := exec.CommandContext(ctx, e.path, e.args(u)...)
	cmd.Stdin = strings.NewReader(u.Text)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", e.program, err)
	}
	return nil
}

// args never carry the text itself; it goes through stdin
func (e *ExecEngine) args(u Utterance) []string {
	rate := u.Rate
	if rate <= 0 {
		rate = DefaultRate
	}
	wpm := strconv.Itoa(int(baseWPM * rate))

	switch e.program {
	case "say":
		// say picks a voice from the system locale
		return []string{"-r", wpm, "-f", "-"}
	default:
		lang := strings.ToLower(u.Lang)
		if lang == "" {
			lang = strings.ToLower(DefaultLang)
		}
		return []string{"-v", lang, "-s", wpm, "--stdin"}
	}
}
