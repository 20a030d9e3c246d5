package testutil

import "vozdalei/api"

// NetworkDown is the error the client returns when the backend is unreachable
func NetworkDown() error {
	return &api.Error{
		Kind:             api.KindNetworkUnavailable,
		FormattedMessage: "Não foi possível conectar ao servidor (http://mock:8000). Verifique se o backend está em execução.",
	}
}

// ServerError returns a 500 with a string detail
func ServerError(detail string) error {
	return &api.Error{
		Kind:       api.KindServer,
		StatusCode: 500,
		Detail:     []byte(`"` + detail + `"`),
	}
}

func Unauthorized() error {
	return &api.Error{Kind: api.KindAuth, StatusCode: 401}
}

func SampleFilters() *api.SearchFilters {
	return &api.SearchFilters{
		Types:   []string{"PL", "PEC", "PLP", "PLV"},
		Years:   []int{2024, 2023},
		Sources: []string{"camara", "senado", "municipal"},
		Status:  []string{"Em tramitação", "Aprovado", "Rejeitado", "Arquivado"},
	}
}
