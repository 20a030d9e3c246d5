package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"vozdalei/api"
	"vozdalei/config"
)

const (
	MsgSimplifyEmpty    = "Por favor, digite um texto para simplificar."
	MsgSimplifyTooShort = "O texto deve ter pelo menos 10 caracteres para ser simplificado."

	// SimplifySpeechTarget identifies the simplified text in the speech slot
	SimplifySpeechTarget = "simplify:result"
)

var ErrSimplifyPending = errors.New("a simplification is already pending")

type Level struct {
	Value api.TargetLevel
	Label string
}

var Levels = []Level{
	{api.LevelSimple, "Simples (Linguagem Cidadã)"},
	{api.LevelModerate, "Moderado (Linguagem Acessível)"},
	{api.LevelTechnical, "Técnico (Mantém Termos Jurídicos)"},
}

type Example struct {
	Title string
	Text  string
}

var Examples = []Example{
	{
		Title: "Artigo de Lei",
		Text:  "Art. 1º Esta Lei institui o Programa Nacional de Acesso à Internet Gratuita em estabelecimentos de ensino público, com o objetivo de promover a inclusão digital e o acesso à informação educacional.",
	},
	{
		Title: "Parágrafo Jurídico",
		Text:  "Parágrafo único. O disposto no caput deste artigo não se aplica aos casos em que a parte interessada comprove, mediante documentação hábil, a impossibilidade de cumprimento do prazo estabelecido, desde que a solicitação de prorrogação seja apresentada com antecedência mínima de 30 (trinta) dias da data limite.",
	},
	{
		Title: "Ementa de Projeto",
		Text:  "Altera a Lei nº 9.394, de 20 de dezembro de 1996, que estabelece as diretrizes e bases da educação nacional, para dispor sobre a obrigatoriedade da oferta de educação em tempo integral nos estabelecimentos de ensino público de educação básica.",
	},
}

// ValidationError is a form error shown to the user as is
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateSimplifyText checks the text before anything is sent. Length is
// counted in characters after trimming; exactly ten is accepted.
func ValidateSimplifyText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &ValidationError{Message: MsgSimplifyEmpty}
	}
	if utf8.RuneCountInString(trimmed) < api.MinSimplifyRunes {
		return &ValidationError{Message: MsgSimplifyTooShort}
	}
	return nil
}

// CharCount is the counter shown above the input, with the minimum hint
// while the text is too short.
func CharCount(text string) string {
	count := fmt.Sprintf("%d caracteres", utf8.RuneCountInString(text))
	if n := utf8.RuneCountInString(strings.TrimSpace(text)); n > 0 && n < api.MinSimplifyRunes {
		count += " (mínimo 10)"
	}
	return count
}

type SimplifyRequest struct {
	ID      uint64
	Request api.SimplificationRequest
	Ctx     context.Context
}

// SimplifyForm is the simplification state machine
type SimplifyForm struct {
	level   int
	pending bool
	seq     uint64
	cancel  context.CancelFunc

	result *api.SimplificationResponse
}

func NewSimplifyForm() *SimplifyForm {
	return &SimplifyForm{}
}

func (f *SimplifyForm) Level() Level {
	return Levels[f.level]
}

func (f *SimplifyForm) CycleLevel() Level {
	f.level = (f.level + 1) % len(Levels)
	return Levels[f.level]
}

func (f *SimplifyForm) SetLevel(value api.TargetLevel) bool {
	for i, l := range Levels {
		if l.Value == value {
			f.level = i
			return true
		}
	}
	return false
}

func (f *SimplifyForm) Pending() bool {
	return f.pending
}

func (f *SimplifyForm) Result() (*api.SimplificationResponse, bool) {
	return f.result, f.result != nil && f.result.SimplifiedText != ""
}

// ReadingTime is the estimate line shown under the result, empty when unknown
func (f *SimplifyForm) ReadingTime() string {
	if f.result == nil || f.result.ReadingTimeMinutes <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f minutos", f.result.ReadingTimeMinutes)
}

// Begin validates text and, when valid, clears the previous result and
// returns the request to send. The text goes out trimmed.
func (f *SimplifyForm) Begin(parent context.Context, text string) (SimplifyRequest, error) {
	if f.pending {
		return SimplifyRequest{}, ErrSimplifyPending
	}
	if err := ValidateSimplifyText(text); err != nil {
		return SimplifyRequest{}, err
	}

	f.result = nil
	f.pending = true
	f.seq++
	ctx, cancel := context.WithCancel(parent)
	f.cancel = cancel

	return SimplifyRequest{
		ID: f.seq,
		Request: api.SimplificationRequest{
			Text:         strings.TrimSpace(text),
			TargetLevel:  f.Level().Value,
			IncludeAudio: false,
		},
		Ctx: ctx,
	}, nil
}

func (f *SimplifyForm) Succeed(id uint64, resp *api.SimplificationResponse) bool {
	if !f.pending || id != f.seq {
		return false
	}
	f.result = resp
	f.done()
	return true
}

// Fail ends the pending request and returns the message for the modal
func (f *SimplifyForm) Fail(id uint64, err error) (string, bool) {
	if !f.pending || id != f.seq {
		return "", false
	}
	if config.DebugLog != nil {
		config.DebugLog.Printf("[Simplify] Request %d failed: %v", id, err)
	}
	f.done()
	return api.NormalizeSimplify(err), true
}

func (f *SimplifyForm) done() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.pending = false
}
