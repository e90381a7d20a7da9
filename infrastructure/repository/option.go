package repository

//go:generate mockgen -source=option.go -destination=mocks/option_mock.go -package=mocks

import (
	"context"
	"strings"
)

// OptionStore é o armazenamento chave-valor onde ficam os documentos de status
type OptionStore interface {
	// Get retorna nil quando a opção não existe
	Get(ctx context.Context, name string) (*string, error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
	// GetLike retorna todas as opções cujo nome começa com prefix
	GetLike(ctx context.Context, prefix string) (map[string]string, error)
	// CompareAndSwap grava value somente se o valor atual for old. old nil
	// exige que a opção ainda não exista.
	CompareAndSwap(ctx context.Context, name string, old *string, value string) (bool, error)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(prefix string) string {
	return likeEscaper.Replace(prefix)
}
