package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "formatted message wins",
			err: &Error{
				Kind:             KindNetworkUnavailable,
				FormattedMessage: "Não foi possível conectar ao servidor (http://localhost:8000). Verifique se o backend está em execução.",
				Detail:           json.RawMessage(`"ignored"`),
			},
			want: "Não foi possível conectar ao servidor (http://localhost:8000). Verifique se o backend está em execução.",
		},
		{
			name: "string detail",
			err:  &Error{Kind: KindServer, StatusCode: 500, Detail: json.RawMessage(`"Falha no modelo"`), Message: "ignored"},
			want: "Falha no modelo",
		},
		{
			name: "list detail",
			err: &Error{Kind: KindValidation, StatusCode: 422, Detail: json.RawMessage(
				`[{"loc":["body","message"],"msg":"field required"},{"loc":["body",0],"msg":""},{"msg":"bad"}]`)},
			want: "body.message: field required\nbody.0: erro de validação\ncampo: bad",
		},
		{
			name: "body message",
			err:  &Error{Kind: KindServer, StatusCode: 502, Message: "Gateway indisponível"},
			want: "Gateway indisponível",
		},
		{
			name: "raw error text",
			err:  &Error{Kind: KindServer, StatusCode: 500},
			want: "Request failed with status code 500",
		},
		{
			name: "plain error",
			err:  errors.New("algo deu errado"),
			want: "algo deu errado",
		},
		{
			name: "fallback",
			err:  errors.New(""),
			want: "Desculpe, ocorreu um erro ao processar sua mensagem.",
		},
		{
			name: "status 401",
			err:  &Error{Kind: KindAuth, StatusCode: 401, Detail: json.RawMessage(`"Unauthorized"`)},
			want: authNotice,
		},
		{
			name: "anthropic auth text in detail",
			err:  &Error{Kind: KindServer, StatusCode: 500, Detail: json.RawMessage(`"Error code: 401 - {'type': 'authentication_error'}"`)},
			want: authNotice,
		},
		{
			name: "missing api key header",
			err:  errors.New("x-api-key header is required"),
			want: authNotice,
		},
		{
			name: "wrapped client error",
			err:  fmt.Errorf("send: %w", &Error{Kind: KindServer, StatusCode: 500, Detail: json.RawMessage(`"boom"`)}),
			want: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.err); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	errs := []error{
		&Error{Kind: KindNetworkUnavailable, FormattedMessage: "Não foi possível conectar ao servidor (http://localhost:8000). Verifique se o backend está em execução."},
		&Error{Kind: KindAuth, StatusCode: 401},
		&Error{Kind: KindServer, StatusCode: 500, Detail: json.RawMessage(`"Falha"`)},
		errors.New(""),
	}

	for _, err := range errs {
		once := Normalize(err)
		twice := Normalize(errors.New(once))
		if once != twice {
			t.Errorf("not idempotent: %q then %q", once, twice)
		}
	}
}

func TestNormalizeSimplify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "422 list detail",
			err: &Error{Kind: KindValidation, StatusCode: 422, Detail: json.RawMessage(
				`[{"loc":["body","text"],"msg":"ensure this value has at least 10 characters"}]`)},
			want: "Erro de validação:\nbody.text: ensure this value has at least 10 characters",
		},
		{
			name: "422 string detail",
			err:  &Error{Kind: KindServer, StatusCode: 422, Detail: json.RawMessage(`"Texto inválido"`)},
			want: "Texto inválido",
		},
		{
			name: "422 without detail",
			err:  &Error{Kind: KindServer, StatusCode: 422},
			want: "O texto enviado não está no formato correto. Verifique se tem pelo menos 10 caracteres.",
		},
		{
			name: "server detail",
			err:  &Error{Kind: KindServer, StatusCode: 500, Detail: json.RawMessage(`"Serviço fora do ar"`)},
			want: "Serviço fora do ar",
		},
		{
			name: "network",
			err:  &Error{Kind: KindNetworkUnavailable, FormattedMessage: "Não foi possível conectar ao servidor (x)."},
			want: "Não foi possível conectar ao servidor (x).",
		},
		{
			name: "auth",
			err:  &Error{Kind: KindAuth, StatusCode: 401},
			want: authNotice,
		},
		{
			name: "fallback",
			err:  errors.New(""),
			want: "Erro ao simplificar texto. Verifique sua conexão e tente novamente.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSimplify(tt.err); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsNetworkUnavailable(t *testing.T) {
	if IsNetworkUnavailable(nil) {
		t.Error("nil is not a network failure")
	}
	if IsNetworkUnavailable(&Error{Kind: KindServer, StatusCode: 500}) {
		t.Error("server error is not a network failure")
	}
	if !IsNetworkUnavailable(fmt.Errorf("wrapped: %w", &Error{Kind: KindNetworkUnavailable})) {
		t.Error("wrapped network failure should be detected")
	}
}
