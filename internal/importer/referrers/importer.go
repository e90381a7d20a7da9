package referrers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ga-importer/internal/datatable"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/internal/importer"
)

const PluginName = "Referrers"

// Nomes dos registros de arquivo
const (
	CampaignsRecordName      = "Referrers_keywordByCampaign"
	KeywordsRecordName       = "Referrers_keywordBySearchEngine"
	SearchEnginesRecordName  = "Referrers_searchEngineByKeyword"
	WebsitesRecordName       = "Referrers_urlByWebsite"
	SocialNetworksRecordName = "Referrers_urlBySocialNetwork"
	ReferrerTypeRecordName   = "Referrers_type"

	DistinctSearchEnginesRecordName  = "Referrers_distinctSearchEngines"
	DistinctSocialNetworksRecordName = "Referrers_distinctSocialNetworks"
	DistinctKeywordsRecordName       = "Referrers_distinctKeywords"
	DistinctCampaignsRecordName      = "Referrers_distinctCampaigns"
	DistinctWebsitesRecordName       = "Referrers_distinctWebsites"
	DistinctWebsitesUrlsRecordName   = "Referrers_distinctWebsitesUrls"
)

const (
	notProvidedKeyword = "(not provided)"
	notSetValue        = "(not set)"
	directEntryValue   = "(direct)"
)

// SocialClassifier identifica redes sociais por URL
type SocialClassifier interface {
	NetworkFromURL(rawURL string) string
	UnknownLabel() string
}

// SearchEngineMapper traduz origens do GA em buscadores
type SearchEngineMapper interface {
	MapSourceToSearchEngine(source string) string
	MapReferralToSearchEngine(source string) (string, bool)
}

type Config struct {
	MaxRowsLevelZero int
	MaxRowsSubtable  int
}

type Importer struct {
	querier      importer.Querier
	siteID       int
	social       SocialClassifier
	searchEngine SearchEngineMapper
	config       Config
}

func New(querier importer.Querier, siteID int, social SocialClassifier, searchEngine SearchEngineMapper, config Config) *Importer {
	return &Importer{
		querier:      querier,
		siteID:       siteID,
		social:       social,
		searchEngine: searchEngine,
		config:       config,
	}
}

// NewFactory cria a fábrica registrada no importer.Registry
func NewFactory(social SocialClassifier, searchEngine SearchEngineMapper, config Config) importer.Factory {
	return func(querier importer.Querier, siteID int) importer.RecordImporter {
		return New(querier, siteID, social, searchEngine, config)
	}
}

func (i *Importer) PluginName() string {
	return PluginName
}

func (i *Importer) ImportRecords(ctx context.Context, day domain.Date) ([]domain.ArchiveRecord, error) {
	referrerType := datatable.New()

	keywordByCampaign, err := i.keywordByCampaign(ctx, day, referrerType)
	if err != nil {
		return nil, err
	}

	keywordBySearchEngine, searchEngineByKeyword, err := i.keywordsAndSearchEngines(ctx, day, referrerType)
	if err != nil {
		return nil, err
	}

	urlByWebsite, urlBySocialNetwork, err := i.urlByWebsite(ctx, day, referrerType)
	if err != nil {
		return nil, err
	}

	numeric := importer.NumericRecords(map[string]float64{
		DistinctCampaignsRecordName:      float64(keywordByCampaign.RowCount()),
		DistinctKeywordsRecordName:       float64(keywordBySearchEngine.RowCount()),
		DistinctSearchEnginesRecordName:  float64(searchEngineByKeyword.RowCount()),
		DistinctWebsitesRecordName:       float64(urlByWebsite.RowCount()),
		DistinctWebsitesUrlsRecordName:   float64(countSubtableRows(urlByWebsite)),
		DistinctSocialNetworksRecordName: float64(urlBySocialNetwork.RowCount()),
	})

	tables := []struct {
		name  string
		table *datatable.Table
	}{
		{CampaignsRecordName, keywordByCampaign},
		{KeywordsRecordName, keywordBySearchEngine},
		{SearchEnginesRecordName, searchEngineByKeyword},
		{WebsitesRecordName, urlByWebsite},
		{SocialNetworksRecordName, urlBySocialNetwork},
		{ReferrerTypeRecordName, referrerType},
	}

	var records []domain.ArchiveRecord
	for _, t := range tables {
		blobs, err := importer.BlobRecords(t.name, t.table, i.config.MaxRowsLevelZero, i.config.MaxRowsSubtable, domain.MetricNbVisits)
		if err != nil {
			return nil, err
		}
		records = append(records, blobs...)
	}

	return append(records, numeric...), nil
}

func (i *Importer) keywordByCampaign(ctx context.Context, day domain.Date, referrerType *datatable.Table) (*datatable.Table, error) {
	table, err := i.querier.Query(ctx, day, domain.ConversionAwareVisitMetrics(), domain.QueryOptions{
		Dimensions: []string{"ga:campaign", "ga:keyword"},
	})
	if err != nil {
		return nil, fmt.Errorf("referrers: erro ao consultar campanhas: %w", err)
	}
	defer table.Release()

	keywordByCampaign := datatable.New()
	for _, row := range table.Rows() {
		campaign := row.Dimension("ga:campaign")
		if campaign == "" || campaign == notSetValue {
			continue
		}

		topLevel := importer.AddRowToTable(keywordByCampaign, row, campaign)
		importer.AddRowToSubtable(topLevel, row, row.Dimension("ga:keyword"))

		importer.AddRowToTable(referrerType, row, strconv.Itoa(domain.ReferrerTypeCampaign))
	}

	return keywordByCampaign, nil
}

func (i *Importer) keywordsAndSearchEngines(ctx context.Context, day domain.Date, referrerType *datatable.Table) (*datatable.Table, *datatable.Table, error) {
	table, err := i.querier.Query(ctx, day, domain.ConversionAwareVisitMetrics(), domain.QueryOptions{
		Dimensions: []string{"ga:source", "ga:medium", "ga:keyword"},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("referrers: erro ao consultar buscadores: %w", err)
	}
	defer table.Release()

	keywordBySearchEngine := datatable.New()
	searchEngineByKeyword := datatable.New()

	for _, row := range table.Rows() {
		source := row.Dimension("ga:source")

		var searchEngine string
		switch row.Dimension("ga:medium") {
		case "referral":
			name, ok := i.searchEngine.MapReferralToSearchEngine(source)
			if !ok {
				continue
			}
			searchEngine = name
		case "organic":
			searchEngine = i.searchEngine.MapSourceToSearchEngine(source)
		default:
			continue
		}

		keyword := row.Dimension("ga:keyword")
		if keyword == "" {
			keyword = notProvidedKeyword
		}

		topLevel := importer.AddRowToTable(keywordBySearchEngine, row, keyword)
		importer.AddRowToSubtable(topLevel, row, searchEngine)

		topLevel = importer.AddRowToTable(searchEngineByKeyword, row, searchEngine)
		importer.AddRowToSubtable(topLevel, row, keyword)

		importer.AddRowToTable(referrerType, row, strconv.Itoa(domain.ReferrerTypeSearchEngine))
	}

	return keywordBySearchEngine, searchEngineByKeyword, nil
}

func (i *Importer) urlByWebsite(ctx context.Context, day domain.Date, referrerType *datatable.Table) (*datatable.Table, *datatable.Table, error) {
	table, err := i.querier.Query(ctx, day, domain.ConversionAwareVisitMetrics(), domain.QueryOptions{
		Dimensions: []string{"ga:fullReferrer"},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("referrers: erro ao consultar sites de referência: %w", err)
	}
	defer table.Release()

	urlByWebsite := datatable.New()
	urlBySocialNetwork := datatable.New()

	for _, row := range table.Rows() {
		fullReferrer := row.Dimension("ga:fullReferrer")

		if fullReferrer == directEntryValue {
			importer.AddRowToTable(referrerType, row, strconv.Itoa(domain.ReferrerTypeDirectEntry))
			continue
		}

		// o GA não informa o protocolo
		referrerURL := "http://" + fullReferrer
		if !strings.HasSuffix(referrerURL, "/") {
			continue
		}

		network := i.social.NetworkFromURL(referrerURL)
		if network != "" && network != i.social.UnknownLabel() {
			topLevel := importer.AddRowToTable(urlBySocialNetwork, row, network)
			importer.AddRowToSubtable(topLevel, row, referrerURL)

			importer.AddRowToTable(referrerType, row, strconv.Itoa(domain.ReferrerTypeSocialNetwork))
			continue
		}

		parsed, err := url.Parse(referrerURL)
		if err != nil {
			logrus.WithError(err).WithField("referrer", fullReferrer).Debug("referrers: URL de referência inválida")
			continue
		}

		topLevel := importer.AddRowToTable(urlByWebsite, row, parsed.Host)
		importer.AddRowToSubtable(topLevel, row, parsed.Path)

		importer.AddRowToTable(referrerType, row, strconv.Itoa(domain.ReferrerTypeWebsite))
	}

	return urlByWebsite, urlBySocialNetwork, nil
}

func countSubtableRows(table *datatable.Table) int {
	total := 0
	for _, row := range table.Rows() {
		if row.Subtable != nil {
			total += row.Subtable.RowCount()
		}
	}
	return total
}
