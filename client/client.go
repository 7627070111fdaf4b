package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/msaldanha/nulldev/err"
	"github.com/msaldanha/nulldev/models"
	"github.com/msaldanha/nulldev/timeline"
)

const (
	ErrInvalidGatewayURL = err.Error("invalid gateway url")

	pathParam = "path"
)

type Options struct {
	GatewayURL string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the proxy gateway. It never sees the upstream key.
type Client struct {
	gatewayURL *url.URL
	http       *http.Client
	logger     *zap.Logger
}

func NewClient(opts Options) (*Client, error) {
	u, er := url.Parse(opts.GatewayURL)
	if er != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidGatewayURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		gatewayURL: u,
		http:       hc,
		logger:     logger.Named("Client"),
	}, nil
}

func (c *Client) SearchCharacters(ctx context.Context, serverID, name string, limit int) ([]models.Character, error) {
	params := url.Values{}
	params.Set("characterName", name)
	params.Set("limit", strconv.Itoa(limit))

	resp := models.SearchResponse{}
	er := c.get(ctx, fmt.Sprintf("servers/%s/characters", url.PathEscape(serverID)), params, &resp)
	if er != nil {
		return nil, er
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrUpstream, models.ErrorMessage(resp.Error))
	}

	rows := make([]models.Character, 0, len(resp.Rows))
	for _, ch := range resp.Rows {
		if ch.ServerID == "" {
			ch.ServerID = serverID
		}
		rows = append(rows, ch)
	}
	return rows, nil
}

func (c *Client) GetTimeline(ctx context.Context, serverID, characterID string, q models.TimelineQuery) ([]timeline.RawEvent, error) {
	params := url.Values{}
	params.Set("startDate", q.StartDate.In(models.UpstreamLocation).Format(models.DateLayout))
	params.Set("endDate", q.EndDate.In(models.UpstreamLocation).Format(models.DateLayout))
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("offset", strconv.Itoa(q.Offset))

	resp := models.TimelineResponse{}
	apiPath := fmt.Sprintf("servers/%s/characters/%s/timeline", url.PathEscape(serverID), url.PathEscape(characterID))
	er := c.get(ctx, apiPath, params, &resp)
	if er != nil {
		return nil, er
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrUpstream, models.ErrorMessage(resp.Error))
	}
	events := resp.Events()
	if events == nil {
		events = []timeline.RawEvent{}
	}
	return events, nil
}

func (c *Client) get(ctx context.Context, apiPath string, params url.Values, out any) error {
	u := *c.gatewayURL
	query := u.Query()
	for k, vs := range params {
		query[k] = vs
	}
	query.Set(pathParam, apiPath)
	u.RawQuery = query.Encode()

	logger := c.logger.With(zap.String("path", apiPath))

	req, er := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if er != nil {
		return fmt.Errorf("%w: %s", models.ErrRequestFailed, er)
	}
	req.Header.Set("Accept", "application/json")

	resp, er := c.http.Do(req)
	if er != nil {
		logger.Warn("Gateway request failed", zap.Error(er))
		return fmt.Errorf("%w: %s", models.ErrRequestFailed, er)
	}
	defer resp.Body.Close()

	body, er := io.ReadAll(resp.Body)
	if er != nil {
		logger.Warn("Failed to read gateway response", zap.Error(er))
		return fmt.Errorf("%w: %s", models.ErrRequestFailed, er)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Warn("Gateway returned an error status", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d", models.ErrRequestFailed, resp.StatusCode)
	}

	mediaType, _, er := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if er != nil || mediaType != "application/json" {
		logger.Warn("Gateway returned a non JSON response", zap.String("content_type", resp.Header.Get("Content-Type")))
		return fmt.Errorf("%w: unexpected content type %q", models.ErrMalformedResponse, resp.Header.Get("Content-Type"))
	}

	if er := sonic.Unmarshal(body, out); er != nil {
		logger.Warn("Failed to decode gateway response", zap.Error(er))
		return fmt.Errorf("%w: %s", models.ErrMalformedResponse, er)
	}
	logger.Debug("Gateway request done", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(body)))
	return nil
}
