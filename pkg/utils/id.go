package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

// GenerateID gera o identificador curto usado nos logs de cada rodada de importação
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}
