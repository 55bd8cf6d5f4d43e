package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/common"
	"github.com/dmitrijs2005/arcanedex/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	log        logging.Logger
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.httpClient.Timeout = d }
}

// WithRateLimit caps outbound requests per second. Zero or less disables it.
func WithRateLimit(rps float64) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}

	c := &HTTPClient{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = u.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded JSON response.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Kind: KindUnavailable, Message: "request not sent", Err: err}
		}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	log := c.log.With("method", method, "path", path, "request_id", requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return &Error{Kind: KindUnavailable, Message: "server unavailable", Err: err}
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindDecode, Status: resp.StatusCode, Message: "failed to decode response", Err: err}
	}
	return nil
}

func decodeError(resp *http.Response) *Error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var eb errorBody
	message := ""
	if json.Unmarshal(raw, &eb) == nil {
		message = eb.Error
		if message == "" {
			message = eb.Message
		}
	} else {
		message = strings.TrimSpace(string(raw))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return &Error{
		Kind:    classify(resp.StatusCode, eb.Code, message),
		Status:  resp.StatusCode,
		Message: message,
	}
}

func validatePage(q PageQuery) error {
	if q.Page < 1 || q.PageSize <= 0 {
		return fmt.Errorf("%w: page=%d size=%d", common.ErrInvalidPage, q.Page, q.PageSize)
	}
	return nil
}

func pageValues(q PageQuery) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.PageSize))
	v.Set("name", q.Name)
	return v
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, strconv.FormatInt(id, 10))
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/users/login", "", nil, creds, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", &Error{Kind: KindDecode, Status: http.StatusOK, Message: "login response has no token"}
	}
	return out.Token, nil
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) error {
	if reg.Role == "" {
		reg.Role = common.RoleUser
	}
	return c.do(ctx, http.MethodPost, "/users/register", "", nil, reg, nil)
}

func (c *HTTPClient) FetchPage(ctx context.Context, token string, q PageQuery) (*models.CreaturePage, error) {
	if err := validatePage(q); err != nil {
		return nil, err
	}
	v := pageValues(q)
	v.Set("OnlyFavoriteArcanes", strconv.FormatBool(q.FavoritesOnly))
	v.Set("ToSaveOffline", strconv.FormatBool(q.ForOfflineSave))

	page := &models.CreaturePage{}
	if err := c.do(ctx, http.MethodGet, "/creatures", token, v, nil, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (c *HTTPClient) AddFavorite(ctx context.Context, token string, creatureID int64) error {
	body := struct {
		CreatureID int64 `json:"CreatureId"`
	}{creatureID}
	return c.do(ctx, http.MethodPost, "/creatures/favourites", token, nil, body, nil)
}

func (c *HTTPClient) RemoveFavorite(ctx context.Context, token string, creatureID int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/creatures/favourites/%s", creatureID), token, nil, nil, nil)
}

func (c *HTTPClient) GetCreatureDetails(ctx context.Context, token string, creatureID int64) (*models.CreatureDetails, error) {
	out := &models.CreatureDetails{}
	if err := c.do(ctx, http.MethodGet, idPath("/creatures/%s", creatureID), token, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ChangeFavoriteBackground(ctx context.Context, token string, creatureID int64, image string) error {
	body := struct {
		BackgroundImg string `json:"BackgroundImg"`
	}{image}
	return c.do(ctx, http.MethodPut, idPath("/creatures/favourites/%s/background", creatureID), token, nil, body, nil)
}

func (c *HTTPClient) ResetFavoriteBackground(ctx context.Context, token string, creatureID int64) error {
	return c.do(ctx, http.MethodPut, idPath("/creatures/favourites/%s/background/default", creatureID), token, nil, nil, nil)
}

func (c *HTTPClient) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	out := &models.Profile{}
	if err := c.do(ctx, http.MethodGet, "/users/profile", token, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, "/users/profile", token, nil, upd, nil)
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/users/deleteAccount", token, nil, nil, nil)
}

func (c *HTTPClient) ListAdminCreatures(ctx context.Context, token string, q PageQuery) (*models.CreaturePage, error) {
	if err := validatePage(q); err != nil {
		return nil, err
	}
	page := &models.CreaturePage{}
	if err := c.do(ctx, http.MethodGet, "/admin/creatures", token, pageValues(q), nil, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (c *HTTPClient) AddCreature(ctx context.Context, token string, in models.CreatureInput) (*models.Creature, error) {
	out := &models.Creature{}
	if err := c.do(ctx, http.MethodPost, "/admin/creatures", token, nil, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) EditCreature(ctx context.Context, token string, creatureID int64, in models.CreatureInput) error {
	return c.do(ctx, http.MethodPut, idPath("/admin/creatures/%s", creatureID), token, nil, in, nil)
}

var _ Client = (*HTTPClient)(nil)
