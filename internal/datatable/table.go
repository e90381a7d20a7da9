// Package datatable implementa a tabela de agregação de dois níveis usada nos
// registros de arquivo: linhas rotuladas com um vetor de métricas e uma
// subtabela opcional.
package datatable

import (
	"github.com/vfg2006/ga-importer/internal/domain"
)

// SummaryRowLabel é o rótulo da linha que agrega as linhas truncadas
const SummaryRowLabel = "-1"

type Columns map[domain.MetricIndex]float64

type Row struct {
	Label    string
	Columns  Columns
	Metadata map[string]string
	Subtable *Table
}

func NewRow(label string) *Row {
	return &Row{Label: label, Columns: Columns{}}
}

// Get retorna o valor da métrica ou zero quando ausente
func (r *Row) Get(metric domain.MetricIndex) float64 {
	return r.Columns[metric]
}

// Dimension retorna o valor de uma dimensão vinda da consulta
func (r *Row) Dimension(name string) string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata[name]
}

// SumColumns soma as colunas informadas nas colunas da linha
func (r *Row) SumColumns(cols Columns) {
	if r.Columns == nil {
		r.Columns = Columns{}
	}
	for metric, value := range cols {
		r.Columns[metric] += value
	}
}

// EnsureSubtable cria a subtabela da linha caso ainda não exista
func (r *Row) EnsureSubtable() *Table {
	if r.Subtable == nil {
		r.Subtable = New()
	}
	return r.Subtable
}

type Table struct {
	rows    []*Row
	byLabel map[string]*Row
}

func New() *Table {
	return &Table{byLabel: map[string]*Row{}}
}

// AddRow adiciona a linha ao final da tabela sem agregar por rótulo
func (t *Table) AddRow(row *Row) {
	t.rows = append(t.rows, row)
	if _, exists := t.byLabel[row.Label]; !exists {
		t.byLabel[row.Label] = row
	}
}

func (t *Table) RowFromLabel(label string) *Row {
	return t.byLabel[label]
}

// SumRowWithLabel soma as colunas na linha com o rótulo, criando-a se necessário
func (t *Table) SumRowWithLabel(label string, cols Columns) *Row {
	row := t.RowFromLabel(label)
	if row == nil {
		row = NewRow(label)
		t.AddRow(row)
	}
	row.SumColumns(cols)
	return row
}

func (t *Table) Rows() []*Row {
	return t.rows
}

func (t *Table) RowCount() int {
	return len(t.rows)
}

// Labels retorna os rótulos na ordem de inserção
func (t *Table) Labels() []string {
	labels := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		labels = append(labels, row.Label)
	}
	return labels
}

// Release descarta as linhas e subtabelas para liberar memória
func (t *Table) Release() {
	for _, row := range t.rows {
		if row.Subtable != nil {
			row.Subtable.Release()
			row.Subtable = nil
		}
	}
	t.rows = nil
	t.byLabel = map[string]*Row{}
}
