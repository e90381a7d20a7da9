// Package gap agrupa valores numéricos em faixas rotuladas, como "4 - 6" ou
// "101%2B" para a faixa aberta final.
package gap

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/vfg2006/ga-importer/internal/datatable"
)

var ErrInvalidGap = errors.New("definição de faixas inválida")

// Bucket é uma faixa fechada [Lower, Upper] ou, quando Open, "Lower e acima"
type Bucket struct {
	Lower int
	Upper int
	Open  bool
}

func Closed(lower, upper int) Bucket {
	return Bucket{Lower: lower, Upper: upper}
}

func AndAbove(lower int) Bucket {
	return Bucket{Lower: lower, Open: true}
}

// Label é o rótulo da faixa usado nas tabelas de arquivo
func (b Bucket) Label() string {
	if b.Open {
		return overflowLabel(b.Lower)
	}
	return fmt.Sprintf("%d - %d", b.Lower, b.Upper)
}

type Gap []Bucket

// Validate exige faixas em ordem crescente, sem sobreposição, com a faixa
// aberta apenas na última posição.
func (g Gap) Validate() error {
	if len(g) == 0 {
		return fmt.Errorf("%w: nenhuma faixa definida", ErrInvalidGap)
	}

	for i, b := range g {
		if b.Open {
			if i != len(g)-1 {
				return fmt.Errorf("%w: faixa aberta %d fora da última posição", ErrInvalidGap, b.Lower)
			}
			if i > 0 && b.Lower < g[i-1].upper() {
				return fmt.Errorf("%w: faixa aberta %d sobrepõe a anterior", ErrInvalidGap, b.Lower)
			}
			continue
		}

		if b.Lower > b.Upper {
			return fmt.Errorf("%w: limite inferior %d maior que o superior %d", ErrInvalidGap, b.Lower, b.Upper)
		}
		if i > 0 && b.Lower <= g[i-1].upper() {
			return fmt.Errorf("%w: faixa %s sobrepõe a anterior", ErrInvalidGap, b.Label())
		}
	}

	return nil
}

// Label retorna o rótulo da primeira faixa cujo limite superior comporta o
// valor. Valores acima de todas as faixas recebem "<último limite inferior + 1>%2B".
// Faixas vazias não têm rótulo.
func (g Gap) Label(value float64) string {
	if len(g) == 0 {
		return ""
	}

	for _, b := range g {
		if b.Open {
			break
		}
		if value <= float64(b.Upper) {
			return b.Label()
		}
	}

	last := g[len(g)-1]
	return overflowLabel(last.Lower)
}

// EmptyTable cria a tabela com uma linha vazia por faixa, na ordem definida
func (g Gap) EmptyTable() *datatable.Table {
	table := datatable.New()
	for _, b := range g {
		table.AddRow(datatable.NewRow(b.Label()))
	}
	return table
}

func (b Bucket) upper() int {
	if b.Open {
		return b.Lower
	}
	return b.Upper
}

func overflowLabel(lower int) string {
	return strconv.Itoa(lower+1) + url.QueryEscape("+")
}
