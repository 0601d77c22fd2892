package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	errx "github.com/voice-finder/server/internal/core/error"
	"github.com/voice-finder/server/internal/finder/model"
	logx "github.com/voice-finder/server/pkg/logger"
)

const (
	defaultBaseURL  = "https://api.elevenlabs.io"
	sharedVoicesURI = "/v1/shared-voices"
	maxPageSize     = 100
	maxBodySnippet  = 512
)

// Client queries the ElevenLabs shared voice library.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client. A zero timeout disables the client-side
// deadline; callers still bound each call through ctx.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type sharedVoicesResponse struct {
	Voices  []model.Voice `json:"voices"`
	HasMore bool          `json:"has_more"`
}

// Search runs one page of the shared voice search.
func (c *Client) Search(ctx context.Context, q Query) ([]model.Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+sharedVoicesURI+"?"+encodeQuery(q), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("xi-api-key", c.apiKey)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errx.WrapCatalog(fmt.Errorf("shared voices request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippet))
		return nil, errx.CatalogStatus(resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errx.WrapCatalog(fmt.Errorf("read shared voices response: %w", err))
	}
	var out sharedVoicesResponse
	if err := sonic.Unmarshal(body, &out); err != nil {
		return nil, errx.WrapCatalog(fmt.Errorf("decode shared voices response: %w", err))
	}

	logx.Ctx(ctx).Debug().
		Str("component", "catalog").
		Str("search", q.Search).
		Str("language", q.Language).
		Int("results", len(out.Voices)).
		Dur("took", time.Since(started)).
		Msg("shared voices fetched")

	return out.Voices, nil
}

func encodeQuery(q Query) string {
	v := url.Values{}
	size := q.PageSize
	if size <= 0 {
		size = 30
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	v.Set("page_size", strconv.Itoa(size))
	setIf(v, "search", q.Search)
	setIf(v, "language", q.Language)
	setIf(v, "accent", q.Accent)
	setIf(v, "gender", q.Gender)
	setIf(v, "sort", q.Sort)
	for _, uc := range q.UseCases {
		if uc = strings.TrimSpace(uc); uc != "" {
			v.Add("use_cases", uc)
		}
	}
	for _, d := range q.Descriptives {
		if d = strings.TrimSpace(d); d != "" {
			v.Add("descriptives", d)
		}
	}
	return v.Encode()
}

func setIf(v url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		v.Set(key, value)
	}
}

var _ Searcher = (*Client)(nil)
