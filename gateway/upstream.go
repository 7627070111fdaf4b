package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"
)

const apiKeyParam = "apikey"

type UpstreamResponse struct {
	Status int
	Body   []byte
}

// Upstream issues requests to the game data API with the secret key
// attached. Errors it returns never carry the request URL.
type Upstream struct {
	base   string
	apiKey string
	http   *http.Client
}

func NewUpstream(baseURL, apiKey string, hc *http.Client) (*Upstream, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	u, er := url.Parse(baseURL)
	if er != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidUpstreamURL
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Upstream{
		base:   strings.TrimRight(baseURL, "/"),
		apiKey: apiKey,
		http:   hc,
	}, nil
}

// URL joins the base url, apiPath and params, with the key set last so a
// caller supplied apikey is always replaced.
func (u *Upstream) URL(apiPath string, params url.Values) string {
	q := url.Values{}
	for k, vs := range params {
		q[k] = append([]string(nil), vs...)
	}
	q.Set(apiKeyParam, u.apiKey)
	return u.base + "/" + strings.TrimLeft(apiPath, "/") + "?" + q.Encode()
}

func (u *Upstream) Get(ctx context.Context, apiPath string, params url.Values) (UpstreamResponse, error) {
	req, er := http.NewRequestWithContext(ctx, http.MethodGet, u.URL(apiPath, params), nil)
	if er != nil {
		return UpstreamResponse{}, fmt.Errorf("%w: %s", ErrUpstreamUnreachable, unwrapURLError(er))
	}
	req.Header.Set("Accept", "application/json")

	resp, er := u.http.Do(req)
	if er != nil {
		return UpstreamResponse{}, fmt.Errorf("%w: %s", ErrUpstreamUnreachable, unwrapURLError(er))
	}
	defer resp.Body.Close()

	body, er := io.ReadAll(resp.Body)
	if er != nil {
		return UpstreamResponse{}, fmt.Errorf("%w: %s", ErrUpstreamUnreachable, unwrapURLError(er))
	}
	if !sonic.Valid(body) {
		return UpstreamResponse{}, fmt.Errorf("%w: status %d", ErrInvalidUpstreamBody, resp.StatusCode)
	}
	return UpstreamResponse{Status: resp.StatusCode, Body: body}, nil
}

// unwrapURLError drops the URL, and with it the key, from transport errors.
func unwrapURLError(er error) error {
	var ue *url.Error
	if errors.As(er, &ue) {
		return ue.Err
	}
	return er
}
