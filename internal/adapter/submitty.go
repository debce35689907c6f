// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/internal/utils"
	"github.com/MKhiriev/submitty-sidebar/models"
)

const (
	loginPath   = "/api/token"
	coursesPath = "/api/courses"
	// Grade detail and attempt history are not served by Submitty yet; the
	// paths below are where the sidebar expects them.
	gradeDetailPath    = "/api/gradeables/%s/grade"
	attemptHistoryPath = "/api/gradeables/%s/attempts"

	// DefaultTimeout bounds every request when no timeout is configured.
	DefaultTimeout = 30 * time.Second
)

// TokenSource returns the current API token, or "" when logged out.
type TokenSource func() string

// Option configures NewSubmittyClient.
type Option func(*options)

type options struct {
	baseURL     string
	timeout     time.Duration
	tokenSource TokenSource
	transport   http.RoundTripper
	headers     map[string]string
}

// WithBaseURL sets the initial base URL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTokenSource sets the accessor read before every authenticated request.
func WithTokenSource(src TokenSource) Option {
	return func(o *options) { o.tokenSource = src }
}

// WithTransport replaces the HTTP round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithHeader adds a default header sent with every request.
func WithHeader(key, value string) Option {
	return func(o *options) { o.headers[key] = value }
}

type submittyClient struct {
	client      *utils.HTTPClient
	tokenSource TokenSource

	mu      sync.RWMutex
	baseURL string

	logger *logger.Logger
}

// NewSubmittyClient builds the resty-backed SubmittyAPI.
func NewSubmittyClient(log *logger.Logger, opts ...Option) SubmittyAPI {
	o := &options{
		timeout: DefaultTimeout,
		headers: map[string]string{"Accept": "application/json"},
	}
	for _, opt := range opts {
		opt(o)
	}

	httpOpts := []utils.HTTPClientOption{
		utils.WithTimeout(o.timeout),
		utils.WithTransport(o.transport),
		utils.WithLogger(restyLogger{log: log}),
	}
	for k, v := range o.headers {
		httpOpts = append(httpOpts, utils.WithHeader(k, v))
	}

	s := &submittyClient{
		client:      utils.NewHTTPClient(httpOpts...),
		tokenSource: o.tokenSource,
		logger:      log,
	}
	s.SetBaseURL(o.baseURL)

	return s
}

func (s *submittyClient) SetBaseURL(baseURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

func (s *submittyClient) BaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseURL
}

func (s *submittyClient) Login(ctx context.Context, userID, password string) (string, error) {
	target, err := s.url(loginPath)
	if err != nil {
		return "", err
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"user_id":  userID,
			"password": password,
		}).
		Post(target)
	if err != nil {
		s.logger.Err(err).Str("func", "submittyClient.Login").Msg("login request failed")
		return "", mapTransportError(err)
	}
	if err = mapHTTPError(resp, false); err != nil {
		return "", err
	}

	data, err := decodeEnvelope(resp, false)
	if err != nil {
		return "", err
	}

	var tok models.TokenData
	if err = json.Unmarshal(data, &tok); err != nil || tok.Token == "" {
		return "", newAPIError(resp.StatusCode(), "login response carried no token")
	}

	return tok.Token, nil
}

func (s *submittyClient) FetchCourses(ctx context.Context, token string) (models.Courses, error) {
	target, err := s.url(coursesPath)
	if err != nil {
		return models.Courses{}, err
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", token).
		Get(target)
	if err != nil {
		s.logger.Err(err).Str("func", "submittyClient.FetchCourses").Msg("courses request failed")
		return models.Courses{}, mapTransportError(err)
	}

	data, err := s.decode(resp)
	if err != nil {
		return models.Courses{}, err
	}

	var courses models.Courses
	if err = json.Unmarshal(data, &courses); err != nil {
		return models.Courses{}, newAPIError(resp.StatusCode(), "malformed courses payload")
	}
	if courses.Unarchived == nil {
		courses.Unarchived = []models.Course{}
	}
	if courses.Dropped == nil {
		courses.Dropped = []models.Course{}
	}

	return courses, nil
}

func (s *submittyClient) FetchGradeDetail(ctx context.Context, gradeableID string) (models.GradeSummary, error) {
	resp, err := s.authedGet(ctx, fmt.Sprintf(gradeDetailPath, url.PathEscape(gradeableID)))
	if err != nil {
		return nil, err
	}

	data, err := s.decode(resp)
	if err != nil {
		return nil, err
	}

	summary := models.GradeSummary{}
	if err = json.Unmarshal(data, &summary); err != nil {
		return nil, newAPIError(resp.StatusCode(), "malformed grade payload")
	}

	return summary, nil
}

func (s *submittyClient) FetchAttemptHistory(ctx context.Context, gradeableID string) ([]models.AttemptRecord, error) {
	resp, err := s.authedGet(ctx, fmt.Sprintf(attemptHistoryPath, url.PathEscape(gradeableID)))
	if err != nil {
		return nil, err
	}

	data, err := s.decode(resp)
	if err != nil {
		return nil, err
	}

	attempts := []models.AttemptRecord{}
	if err = json.Unmarshal(data, &attempts); err != nil {
		return nil, newAPIError(resp.StatusCode(), "malformed attempts payload")
	}

	return attempts, nil
}

func (s *submittyClient) authedGet(ctx context.Context, path string) (*resty.Response, error) {
	target, err := s.url(path)
	if err != nil {
		return nil, err
	}

	resp, err := s.authedRequest(ctx).Get(target)
	if err != nil {
		s.logger.Err(err).Str("func", "submittyClient.authedGet").Str("path", path).Msg("request failed")
		return nil, mapTransportError(err)
	}

	return resp, nil
}

func (s *submittyClient) authedRequest(ctx context.Context) *resty.Request {
	req := s.client.R().SetContext(ctx)
	if s.tokenSource != nil {
		if token := s.tokenSource(); token != "" {
			req.SetHeader("Authorization", token)
		}
	}
	return req
}

func (s *submittyClient) decode(resp *resty.Response) (json.RawMessage, error) {
	if err := mapHTTPError(resp, true); err != nil {
		return nil, err
	}
	return decodeEnvelope(resp, true)
}

func (s *submittyClient) url(path string) (string, error) {
	base := s.BaseURL()
	if base == "" {
		return "", &APIError{Message: ErrBaseURLNotSet.Error(), kind: ErrBaseURLNotSet}
	}
	return base + path, nil
}
