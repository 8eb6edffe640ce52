package marketdata

import (
	"context"
	"fmt"
	"time"

	"ScenarioSim/internal/domain/models"
	dservice "ScenarioSim/internal/domain/service"
	xhttp "ScenarioSim/pkg/http"
)

// Provider fetches spot prices and on-chain metrics over HTTP.
type Provider struct {
	client      *xhttp.Client
	baseURL     string
	spotPath    string
	metricsPath string
}

var _ dservice.MarketDataProvider = (*Provider)(nil)

// NewProvider creates an HTTP-backed market data provider.
func NewProvider(baseURL, spotPath, metricsPath string, timeout time.Duration) *Provider {
	return &Provider{
		client:      xhttp.NewClient(xhttp.WithTimeout(timeout)),
		baseURL:     baseURL,
		spotPath:    spotPath,
		metricsPath: metricsPath,
	}
}

type spotResponse struct {
	Price float64 `json:"price"`
}

// GetSpotPrice returns the current spot price.
func (p *Provider) GetSpotPrice(ctx context.Context) (float64, error) {
	var resp spotResponse
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    p.baseURL + p.spotPath,
	}, &resp)
	if err != nil {
		return 0, fmt.Errorf("fetch spot price: %w", err)
	}
	if resp.Price <= 0 {
		return 0, fmt.Errorf("invalid spot price %v", resp.Price)
	}
	return resp.Price, nil
}

// GetOnChainMetrics returns TVL, APY and gas price.
func (p *Provider) GetOnChainMetrics(ctx context.Context) (models.OnChainMetrics, error) {
	var m models.OnChainMetrics
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    p.baseURL + p.metricsPath,
	}, &m)
	if err != nil {
		return models.OnChainMetrics{}, fmt.Errorf("fetch on-chain metrics: %w", err)
	}
	return m, nil
}
