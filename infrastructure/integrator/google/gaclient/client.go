package gaclient

//go:generate mockgen -source=client.go -destination=../mocks/gaclient_mock.go -package=mocks

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	gadomain "github.com/vfg2006/ga-importer/infrastructure/integrator/google/domain"
	"github.com/vfg2006/ga-importer/internal/config"
	"github.com/vfg2006/ga-importer/pkg/httpretry"
	"golang.org/x/oauth2/google"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrRateLimited indica que a cota da Reporting API foi esgotada
var ErrRateLimited = errors.New("limite de requisições da API do Google atingido")

type Client interface {
	BatchGet(ctx context.Context, req *gadomain.GetReportsRequest) (*gadomain.GetReportsResponse, error)
}

type GAClient struct {
	httpClient httpretry.HTTPDoer
	url        string
}

// NewClient usa o doer informado; em produção ele vem de NewHTTPClient
func NewClient(cfg *config.Config, httpClient httpretry.HTTPDoer) Client {
	return &GAClient{
		httpClient: httpretry.NewRetryClient(httpClient, cfg.Google.MaxRetries),
		url:        cfg.Google.ReportingURL,
	}
}

// NewHTTPClient cria o cliente HTTP autenticado pela conta de serviço
func NewHTTPClient(ctx context.Context, cfg *config.Config) (*http.Client, error) {
	credentials, err := os.ReadFile(cfg.Google.CredentialsFile)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler credenciais do Google")
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentials, cfg.Google.Scopes...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao interpretar credenciais do Google")
	}

	return jwtConfig.Client(ctx), nil
}

func (c *GAClient) BatchGet(ctx context.Context, reportsReq *gadomain.GetReportsRequest) (*gadomain.GetReportsResponse, error) {
	body, err := json.Marshal(reportsReq)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar requisição")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleError(resp, data)
	}

	var response gadomain.GetReportsResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta")
	}

	return &response, nil
}

func (c *GAClient) handleError(resp *http.Response, data []byte) error {
	var errResp gadomain.ErrorResponse
	if err := json.Unmarshal(data, &errResp); err != nil || errResp.Error.Code == 0 {
		errResp.Error.Code = resp.StatusCode
	}

	logrus.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"code":    errResp.Error.Status,
		"message": errResp.Error.Message,
	}).Warn("gaclient: requisição à Reporting API falhou")

	if errResp.IsRateLimited() {
		return errors.Wrap(ErrRateLimited, errResp.Error.Message)
	}

	return errors.Errorf("requisição falhou com status %s: %s", resp.Status, errResp.Error.Message)
}
