package referrers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ga-importer/internal/classifier"
	"github.com/vfg2006/ga-importer/internal/datatable"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/internal/importer/mocks"
	"go.uber.org/mock/gomock"
)

func gaRow(visits float64, dims map[string]string) *datatable.Row {
	row := datatable.NewRow("")
	row.Metadata = dims
	row.Columns[domain.MetricNbVisits] = visits
	return row
}

func gaTable(rows ...*datatable.Row) *datatable.Table {
	table := datatable.New()
	for _, row := range rows {
		table.AddRow(row)
	}
	return table
}

func dimensionsAre(dims ...string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		opts, ok := x.(domain.QueryOptions)
		return ok && assert.ObjectsAreEqual(dims, opts.Dimensions)
	})
}

func newTestImporter(t *testing.T, querier *mocks.MockQuerier) *Importer {
	t.Helper()

	social, err := classifier.NewSocial("Unknown")
	require.NoError(t, err)
	searchEngines, err := classifier.NewSearchEngineMapper()
	require.NoError(t, err)

	return New(querier, 1, social, searchEngines, Config{MaxRowsLevelZero: 100, MaxRowsSubtable: 50})
}

func expectQueries(querier *mocks.MockQuerier) {
	querier.EXPECT().
		Query(gomock.Any(), gomock.Any(), gomock.Any(), dimensionsAre("ga:campaign", "ga:keyword")).
		DoAndReturn(func(context.Context, domain.Date, []domain.MetricIndex, domain.QueryOptions) (*datatable.Table, error) {
			return gaTable(
				gaRow(4, map[string]string{"ga:campaign": "black-friday", "ga:keyword": "desconto"}),
				gaRow(1, map[string]string{"ga:campaign": "black-friday", "ga:keyword": "oferta"}),
				gaRow(9, map[string]string{"ga:campaign": "(not set)", "ga:keyword": ""}),
				gaRow(2, map[string]string{"ga:campaign": "", "ga:keyword": "x"}),
			), nil
		})

	querier.EXPECT().
		Query(gomock.Any(), gomock.Any(), gomock.Any(), dimensionsAre("ga:source", "ga:medium", "ga:keyword")).
		DoAndReturn(func(context.Context, domain.Date, []domain.MetricIndex, domain.QueryOptions) (*datatable.Table, error) {
			return gaTable(
				gaRow(5, map[string]string{"ga:source": "google", "ga:medium": "organic", "ga:keyword": ""}),
				gaRow(3, map[string]string{"ga:source": "images.google.com", "ga:medium": "referral", "ga:keyword": "gatos"}),
				gaRow(7, map[string]string{"ga:source": "example.com", "ga:medium": "referral", "ga:keyword": ""}),
				gaRow(8, map[string]string{"ga:source": "newsletter", "ga:medium": "email", "ga:keyword": ""}),
			), nil
		})

	querier.EXPECT().
		Query(gomock.Any(), gomock.Any(), gomock.Any(), dimensionsAre("ga:fullReferrer")).
		DoAndReturn(func(context.Context, domain.Date, []domain.MetricIndex, domain.QueryOptions) (*datatable.Table, error) {
			return gaTable(
				gaRow(10, map[string]string{"ga:fullReferrer": "(direct)"}),
				gaRow(2, map[string]string{"ga:fullReferrer": "facebook.com/"}),
				gaRow(3, map[string]string{"ga:fullReferrer": "blog.example.com/posts/"}),
				gaRow(1, map[string]string{"ga:fullReferrer": "blog.example.com/sobre/"}),
				gaRow(6, map[string]string{"ga:fullReferrer": "google"}),
			), nil
		})
}

func recordsByName(records []domain.ArchiveRecord) map[string]domain.ArchiveRecord {
	byName := map[string]domain.ArchiveRecord{}
	for _, r := range records {
		byName[r.Name] = r
	}
	return byName
}

func visitsByLabel(t *testing.T, blob []byte) map[string]float64 {
	t.Helper()

	table, _, err := datatable.Unserialize(blob)
	require.NoError(t, err)

	out := map[string]float64{}
	for _, row := range table.Rows() {
		out[row.Label] = row.Get(domain.MetricNbVisits)
	}
	return out
}

func TestImporter_ImportRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)
	expectQueries(querier)

	records, err := newTestImporter(t, querier).ImportRecords(context.Background(), domain.NewDate(2024, 3, 10))
	require.NoError(t, err)

	byName := recordsByName(records)

	t.Run("Campanhas ignoram valores vazios", func(t *testing.T) {
		assert.Equal(t, map[string]float64{"black-friday": 5}, visitsByLabel(t, byName[CampaignsRecordName].Blob))
		assert.Equal(t, map[string]float64{"desconto": 4, "oferta": 1}, visitsByLabel(t, byName[CampaignsRecordName+"_1"].Blob))
	})

	t.Run("Buscadores agrupados por palavra-chave", func(t *testing.T) {
		assert.Equal(t, map[string]float64{"(not provided)": 5, "gatos": 3}, visitsByLabel(t, byName[KeywordsRecordName].Blob))
		assert.Equal(t, map[string]float64{"Google": 8}, visitsByLabel(t, byName[SearchEnginesRecordName].Blob))
	})

	t.Run("Sites e redes sociais", func(t *testing.T) {
		assert.Equal(t, map[string]float64{"blog.example.com": 4}, visitsByLabel(t, byName[WebsitesRecordName].Blob))
		assert.Equal(t, map[string]float64{"Facebook": 2}, visitsByLabel(t, byName[SocialNetworksRecordName].Blob))
	})

	t.Run("Tabela de tipos de referência", func(t *testing.T) {
		assert.Equal(t, map[string]float64{
			"6": 5,
			"2": 8,
			"1": 10,
			"7": 2,
			"3": 4,
		}, visitsByLabel(t, byName[ReferrerTypeRecordName].Blob))
	})

	t.Run("Contagens distintas", func(t *testing.T) {
		assert.Equal(t, float64(1), byName[DistinctCampaignsRecordName].Value)
		assert.Equal(t, float64(2), byName[DistinctKeywordsRecordName].Value)
		assert.Equal(t, float64(1), byName[DistinctSearchEnginesRecordName].Value)
		assert.Equal(t, float64(1), byName[DistinctWebsitesRecordName].Value)
		assert.Equal(t, float64(2), byName[DistinctWebsitesUrlsRecordName].Value)
		assert.Equal(t, float64(1), byName[DistinctSocialNetworksRecordName].Value)
		assert.Equal(t, domain.RecordNumeric, byName[DistinctWebsitesUrlsRecordName].Kind)
	})
}

func TestImporter_ImportRecords_PalavrasChaveVazias(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)

	querier.EXPECT().
		Query(gomock.Any(), gomock.Any(), gomock.Any(), dimensionsAre("ga:campaign", "ga:keyword")).
		Return(gaTable(
			gaRow(4, map[string]string{"ga:campaign": "promo", "ga:keyword": ""}),
			gaRow(3, map[string]string{"ga:campaign": "promo", "ga:keyword": ""}),
		), nil)
	querier.EXPECT().
		Query(gomock.Any(), gomock.Any(), gomock.Any(), dimensionsAre("ga:source", "ga:medium", "ga:keyword")).
		Return(gaTable(), nil)
	querier.EXPECT().
		Query(gomock.Any(), gomock.Any(), gomock.Any(), dimensionsAre("ga:fullReferrer")).
		Return(gaTable(
			gaRow(2, map[string]string{"ga:fullReferrer": "blog.example.com/"}),
			gaRow(5, map[string]string{"ga:fullReferrer": "blog.example.com/"}),
		), nil)

	records, err := newTestImporter(t, querier).ImportRecords(context.Background(), domain.NewDate(2024, 3, 10))
	require.NoError(t, err)

	byName := recordsByName(records)

	assert.Equal(t, map[string]float64{"promo": 7}, visitsByLabel(t, byName[CampaignsRecordName].Blob))
	assert.Equal(t, map[string]float64{"": 7}, visitsByLabel(t, byName[CampaignsRecordName+"_1"].Blob))
	assert.Equal(t, map[string]float64{"blog.example.com": 7}, visitsByLabel(t, byName[WebsitesRecordName].Blob))
	assert.Equal(t, float64(1), byName[DistinctWebsitesUrlsRecordName].Value)
}

func TestImporter_ImportRecords_SemEstadoEntreChamadas(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)
	expectQueries(querier)
	expectQueries(querier)

	imp := newTestImporter(t, querier)
	day := domain.NewDate(2024, 3, 10)

	first, err := imp.ImportRecords(context.Background(), day)
	require.NoError(t, err)
	second, err := imp.ImportRecords(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestImporter_ImportRecords_ErroNaConsulta(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)

	querier.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("falha"))

	_, err := newTestImporter(t, querier).ImportRecords(context.Background(), domain.NewDate(2024, 3, 10))
	assert.Error(t, err)
}
