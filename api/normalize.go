package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	chatFallback     = "Desculpe, ocorreu um erro ao processar sua mensagem."
	simplifyFallback = "Erro ao simplificar texto. Verifique sua conexão e tente novamente."
	authNotice       = "Erro de autenticação: Verifique se as chaves de API estão configuradas corretamente no servidor."
	formatNotice     = "O texto enviado não está no formato correto. Verifique se tem pelo menos 10 caracteres."
)

// Normalize turns any client failure into the text shown to the user in the
// chat transcript.
func Normalize(err error) string {
	if err == nil {
		return ""
	}
	return authRewrite(err, describe(err, chatFallback, true))
}

// NormalizeSimplify is Normalize for the simplify form, where a 422 means the
// text itself was rejected.
func NormalizeSimplify(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == 422 {
		if lines, ok := detailLines(apiErr.Detail); ok {
			return "Erro de validação:\n" + lines
		}
		if s, ok := detailString(apiErr.Detail); ok {
			return s
		}
		return formatNotice
	}

	return authRewrite(err, describe(err, simplifyFallback, false))
}

// IsNetworkUnavailable reports whether err means the backend could not be reached
func IsNetworkUnavailable(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetworkUnavailable
}

func describe(err error, fallback string, useMessage bool) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.FormattedMessage != "" {
			return apiErr.FormattedMessage
		}
		if s, ok := detailString(apiErr.Detail); ok && s != "" {
			return s
		}
		if lines, ok := detailLines(apiErr.Detail); ok && lines != "" {
			return lines
		}
		if useMessage && apiErr.Message != "" {
			return apiErr.Message
		}
	}
	if text := err.Error(); text != "" {
		return text
	}
	return fallback
}

func authRewrite(err error, text string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
		return authNotice
	}
	if strings.Contains(text, "401") ||
		strings.Contains(text, "authentication_error") ||
		strings.Contains(text, "x-api-key") {
		return authNotice
	}
	return text
}

func detailString(detail json.RawMessage) (string, bool) {
	if len(detail) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(detail, &s); err != nil {
		return "", false
	}
	return s, true
}

func detailLines(detail json.RawMessage) (string, bool) {
	if len(detail) == 0 {
		return "", false
	}
	var issues []validationIssue
	if err := json.Unmarshal(detail, &issues); err != nil || issues == nil {
		return "", false
	}

	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		loc := "campo"
		if len(issue.Loc) > 0 {
			parts := make([]string, len(issue.Loc))
			for i, p := range issue.Loc {
				parts[i] = fmt.Sprint(p)
			}
			loc = strings.Join(parts, ".")
		}
		msg := issue.Msg
		if msg == "" {
			msg = "erro de validação"
		}
		lines = append(lines, loc+": "+msg)
	}
	return strings.Join(lines, "\n"), true
}
