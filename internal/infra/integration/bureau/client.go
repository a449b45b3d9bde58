package bureau

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/inadimplencia-api/internal/cpf"
)

// tokens são renovados 5 minutos antes de expirar
const tokenRefreshMargin = 5 * time.Minute

// Client consulta o bureau real via HTTP (OAuth2 client credentials).
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	http         *http.Client
	logger       *zap.Logger
	now          func() time.Time

	mu             sync.Mutex
	accessToken    string
	tokenExpiresAt time.Time
}

func NewClient(baseURL, clientID, clientSecret string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		http:         &http.Client{Timeout: timeout},
		logger:       logger,
		now:          time.Now,
	}
}

// ConsultCPF: qualquer falha vira ErrQueryFailed, o motivo real só vai pro log
func (c *Client) ConsultCPF(ctx context.Context, document string) (*Response, error) {
	start := time.Now()
	c.logger.Info("🔎 consultando bureau", zap.String("cpf", cpf.Mask(document)))

	resp, err := c.consult(ctx, document)
	if err != nil {
		c.logger.Error("❌ erro na consulta ao bureau",
			zap.String("cpf", cpf.Mask(document)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, ErrQueryFailed
	}

	c.logger.Info("✅ resposta do bureau recebida",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("status", string(resp.Status)),
	)
	return resp, nil
}

func (c *Client) consult(ctx context.Context, document string) (*Response, error) {
	token, err := c.ensureValidToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/consultas/%s", c.baseURL, url.PathEscape(document))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "InadimplenciaAPI/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro de comunicação com bureau: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidateToken()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("bureau rejeitou a consulta (status %d): %s", resp.StatusCode, string(body))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do bureau: %w", err)
	}
	if !out.Status.Valid() {
		return nil, fmt.Errorf("status desconhecido do bureau: %q", out.Status)
	}
	return &out, nil
}

func (c *Client) ensureValidToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.now().Before(c.tokenExpiresAt.Add(-tokenRefreshMargin)) {
		return c.accessToken, nil
	}

	c.logger.Info("🔑 obtendo novo access token do bureau")

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro ao obter token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("bureau recusou credenciais (status %d)", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("erro ao ler token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token vazio na resposta do bureau")
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiresAt = c.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()
}
