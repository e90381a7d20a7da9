// Package importer define o contrato dos importadores de registros e os
// auxiliares compartilhados para remodelar respostas do GA em tabelas de arquivo.
package importer

//go:generate mockgen -source=importer.go -destination=mocks/importer_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sort"

	"github.com/vfg2006/ga-importer/internal/datatable"
	"github.com/vfg2006/ga-importer/internal/domain"
)

// Querier consulta o GA para um dia e devolve uma linha por combinação de
// dimensões, com os valores das dimensões em Metadata.
type Querier interface {
	Query(ctx context.Context, day domain.Date, metrics []domain.MetricIndex, opts domain.QueryOptions) (*datatable.Table, error)
}

// RecordImporter produz os registros de arquivo de um plugin para um dia.
// Implementações não guardam estado entre chamadas.
type RecordImporter interface {
	PluginName() string
	ImportRecords(ctx context.Context, day domain.Date) ([]domain.ArchiveRecord, error)
}

// Factory cria o importador de um site ligado ao seu serviço de consulta
type Factory func(querier Querier, siteID int) RecordImporter

// AddRowToTable soma as métricas de row na linha rotulada de table
func AddRowToTable(table *datatable.Table, row *datatable.Row, label string) *datatable.Row {
	return table.SumRowWithLabel(label, row.Columns)
}

// AddRowToSubtable soma as métricas de row na subtabela de topLevel
func AddRowToSubtable(topLevel *datatable.Row, row *datatable.Row, label string) *datatable.Row {
	return topLevel.EnsureSubtable().SumRowWithLabel(label, row.Columns)
}

// BlobRecords serializa a tabela em um registro para a raiz e um por subtabela,
// liberando a tabela em seguida.
func BlobRecords(name string, table *datatable.Table, maxRows, maxRowsSubtable int, sortColumn domain.MetricIndex) ([]domain.ArchiveRecord, error) {
	defer table.Release()

	chunks, err := table.Serialize(maxRows, maxRowsSubtable, sortColumn)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar %s: %w", name, err)
	}

	records := make([]domain.ArchiveRecord, 0, len(chunks))
	for id, chunk := range chunks {
		records = append(records, domain.NewBlobRecord(domain.SubtableRecordName(name, id), chunk))
	}
	return records, nil
}

// NumericRecords converte valores nomeados em registros numéricos ordenados por nome
func NumericRecords(values map[string]float64) []domain.ArchiveRecord {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	records := make([]domain.ArchiveRecord, 0, len(names))
	for _, name := range names {
		records = append(records, domain.NewNumericRecord(name, values[name]))
	}
	return records
}

// Registry mantém as fábricas de importadores na ordem de execução
type Registry struct {
	names     []string
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

func (r *Registry) Register(pluginName string, factory Factory) {
	if _, exists := r.factories[pluginName]; !exists {
		r.names = append(r.names, pluginName)
	}
	r.factories[pluginName] = factory
}

// Build instancia todos os importadores registrados para o site
func (r *Registry) Build(querier Querier, siteID int) []RecordImporter {
	importers := make([]RecordImporter, 0, len(r.names))
	for _, name := range r.names {
		importers = append(importers, r.factories[name](querier, siteID))
	}
	return importers
}

func (r *Registry) PluginNames() []string {
	return append([]string(nil), r.names...)
}
