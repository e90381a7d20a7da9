package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ga-importer/infrastructure/repository"
	"github.com/vfg2006/ga-importer/internal/datatable"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/pkg/apiErrors"
)

type ArchiveRow struct {
	Label      string             `json:"label"`
	Columns    map[string]float64 `json:"columns"`
	SubtableID int                `json:"subtable_id,omitempty"`
}

// GetArchive devolve um registro de arquivo decodificado para conferência da importação
func GetArchive(archives repository.ArchiveRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siteID, ok := siteIDParam(w, r)
		if !ok {
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		day, err := domain.ParseDate(params.ByName("date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use YYYY-MM-DD", nil)
			return
		}
		name := params.ByName("name")

		blob, err := archives.GetBlob(r.Context(), siteID, day, name)
		if err != nil {
			logrus.WithError(err).WithField("site_id", siteID).Error("handler: erro ao buscar arquivo")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar arquivo", nil)
			return
		}
		if blob == nil {
			apiErrors.WriteError(w, apiErrors.ErrArchiveNotFound, "Arquivo não encontrado", map[string]any{
				"idSite": siteID,
				"date":   day.String(),
				"name":   name,
			})
			return
		}

		table, subtables, err := datatable.Unserialize(blob)
		if err != nil {
			logrus.WithError(err).WithField("name", name).Error("handler: arquivo corrompido")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao decodificar arquivo", nil)
			return
		}
		defer table.Release()

		rows := make([]ArchiveRow, 0, table.RowCount())
		for _, row := range table.Rows() {
			columns := make(map[string]float64, len(row.Columns))
			for metric, value := range row.Columns {
				columns[metric.Name()] = value
			}
			rows = append(rows, ArchiveRow{
				Label:      row.Label,
				Columns:    columns,
				SubtableID: subtables[row.Label],
			})
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"idSite": siteID,
			"date":   day.String(),
			"name":   name,
			"rows":   rows,
		})
	}
}
