package datatable

import (
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/ga-importer/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type serializedRow struct {
	Label          string                         `json:"label"`
	Columns        map[domain.MetricIndex]float64 `json:"columns"`
	IDSubDataTable int                            `json:"idsubdatatable,omitempty"`
}

// Serialize converte a tabela em blobs: o índice 0 é a tabela raiz e cada
// índice seguinte é uma subtabela referenciada por idsubdatatable. Tabelas
// com mais linhas que o limite são ordenadas por sortColumn e as linhas
// excedentes são somadas em uma linha de resumo.
func (t *Table) Serialize(maxRowsLevelZero, maxRowsSubtable int, sortColumn domain.MetricIndex) ([][]byte, error) {
	chunks := [][]byte{nil}
	if err := t.serializeInto(0, maxRowsLevelZero, maxRowsSubtable, sortColumn, &chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

func (t *Table) serializeInto(id, maxRows, maxRowsSubtable int, sortColumn domain.MetricIndex, chunks *[][]byte) error {
	rows := truncate(t.rows, maxRows, sortColumn)

	out := make([]serializedRow, 0, len(rows))
	for _, row := range rows {
		sr := serializedRow{Label: row.Label, Columns: row.Columns}

		if row.Subtable != nil && row.Subtable.RowCount() > 0 {
			subID := len(*chunks)
			*chunks = append(*chunks, nil)
			if err := row.Subtable.serializeInto(subID, maxRowsSubtable, maxRowsSubtable, sortColumn, chunks); err != nil {
				return err
			}
			sr.IDSubDataTable = subID
		}

		out = append(out, sr)
	}

	blob, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("erro ao serializar tabela: %w", err)
	}
	(*chunks)[id] = blob

	return nil
}

func truncate(rows []*Row, maxRows int, sortColumn domain.MetricIndex) []*Row {
	if maxRows <= 0 || len(rows) <= maxRows {
		return rows
	}

	sorted := make([]*Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := sorted[i].Get(sortColumn), sorted[j].Get(sortColumn)
		if vi != vj {
			return vi > vj
		}
		return sorted[i].Label < sorted[j].Label
	})

	kept := sorted[:maxRows-1]
	summary := NewRow(SummaryRowLabel)
	for _, row := range sorted[maxRows-1:] {
		summary.SumColumns(row.Columns)
		if row.Subtable == nil {
			continue
		}
		for _, sub := range row.Subtable.Rows() {
			summary.EnsureSubtable().SumRowWithLabel(sub.Label, sub.Columns)
		}
	}

	result := make([]*Row, 0, maxRows)
	result = append(result, kept...)
	return append(result, summary)
}

// Unserialize lê um blob produzido por Serialize (sem subtabelas)
func Unserialize(blob []byte) (*Table, map[string]int, error) {
	var rows []serializedRow
	if err := json.Unmarshal(blob, &rows); err != nil {
		return nil, nil, fmt.Errorf("erro ao desserializar tabela: %w", err)
	}

	table := New()
	subtables := map[string]int{}
	for _, sr := range rows {
		row := NewRow(sr.Label)
		row.SumColumns(sr.Columns)
		table.AddRow(row)
		if sr.IDSubDataTable > 0 {
			subtables[sr.Label] = sr.IDSubDataTable
		}
	}
	return table, subtables, nil
}
