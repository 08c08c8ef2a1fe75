package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/csrftok/internal/telemetry/logger"
	"github.com/yndnr/csrftok/internal/telemetry/metric"
	"github.com/yndnr/csrftok/pkg/csrf"
)

// CSRFService creates and checks CSRF tokens.
type CSRFService struct {
	tokenizer atomic.Pointer[csrf.Tokenizer]
	tokOpts   []csrf.Option
	logger    logger.Logger
	metrics   *metric.Registry
}

// Option configures a CSRFService.
type Option func(*CSRFService)

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *CSRFService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records service activity in r. The tokenizer settings are
// exported on r as well.
func WithMetrics(r *metric.Registry) Option {
	return func(s *CSRFService) {
		s.metrics = r
	}
}

// WithTokenizerOptions passes opts to every tokenizer the service builds.
func WithTokenizerOptions(opts ...csrf.Option) Option {
	return func(s *CSRFService) {
		s.tokOpts = append(s.tokOpts, opts...)
	}
}

// NewCSRFService validates cfg and returns a service for it.
func NewCSRFService(cfg csrf.Config, opts ...Option) (*CSRFService, error) {
	s := &CSRFService{logger: logger.Default()}
	for _, opt := range opts {
		opt(s)
	}

	tok, err := csrf.New(cfg, s.tokOpts...)
	if err != nil {
		return nil, err
	}
	s.tokenizer.Store(tok)

	if s.metrics != nil {
		err := s.metrics.Register(metric.NewCollector(s.Config))
		var are prometheus.AlreadyRegisteredError
		if err != nil && !errors.As(err, &are) {
			return nil, fmt.Errorf("register tokenizer collector: %w", err)
		}
	}

	s.logger.Debug("csrf service ready", configAttrs(tok.Config())...)
	return s, nil
}

// Tokenizer returns the current tokenizer.
func (s *CSRFService) Tokenizer() *csrf.Tokenizer {
	return s.tokenizer.Load()
}

// Config returns the configuration of the current tokenizer.
func (s *CSRFService) Config() csrf.Config {
	return s.tokenizer.Load().Config()
}

// Reload replaces the tokenizer with one built from cfg. On error the
// current tokenizer stays in place.
func (s *CSRFService) Reload(cfg csrf.Config) error {
	tok, err := csrf.New(cfg, s.tokOpts...)
	if err != nil {
		s.recordReload("error")
		s.logger.Warn("tokenizer reload rejected", "error", err)
		return err
	}
	s.tokenizer.Store(tok)
	s.recordReload("ok")
	s.logger.Info("tokenizer reloaded", configAttrs(tok.Config())...)
	return nil
}

// NewSecret returns a fresh secret.
func (s *CSRFService) NewSecret(ctx context.Context) (string, error) {
	secret, err := s.tokenizer.Load().Secret()
	if err != nil {
		s.incSecretError()
		logger.L(ctx).Error("secret generation failed", "error", err)
		return "", err
	}
	s.incSecretGenerated()
	return secret, nil
}

// NewSecrets draws n secrets concurrently. It stops at the first error or
// when ctx is done.
func (s *CSRFService) NewSecrets(ctx context.Context, n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("secret count must be >= 1, got %d", n)
	}

	tok := s.tokenizer.Load()
	pending := make([]<-chan csrf.SecretResult, n)
	for i := range pending {
		pending[i] = tok.SecretAsync()
	}

	out := make([]string, 0, n)
	for _, ch := range pending {
		select {
		case res := <-ch:
			if res.Err != nil {
				s.incSecretError()
				logger.L(ctx).Error("secret generation failed", "error", res.Err)
				return nil, res.Err
			}
			s.incSecretGenerated()
			out = append(out, res.Secret)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return out, nil
}

// Issue creates a token for secret and userInfo.
func (s *CSRFService) Issue(ctx context.Context, secret, userInfo string) (string, error) {
	token, err := s.tokenizer.Load().Create(secret, userInfo)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncTokenCreateError()
		}
		logger.L(ctx).Warn("token create rejected", "error", err, "code", csrf.Code(err))
		return "", err
	}
	if s.metrics != nil {
		s.metrics.IncTokenCreated()
	}
	logger.L(ctx).Debug("token created", "token", token)
	return token, nil
}

// CheckRequest contains parameters for token verification.
type CheckRequest struct {
	Secret   string
	Token    string
	UserInfo string
}

// CheckResponse contains the result of token verification.
type CheckResponse struct {
	Valid    bool
	Result   csrf.Result
	Duration time.Duration
}

// Check verifies a token and reports why it was rejected.
func (s *CSRFService) Check(ctx context.Context, req CheckRequest) CheckResponse {
	start := time.Now()
	result := s.tokenizer.Load().Check(req.Secret, req.Token, req.UserInfo)
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.RecordVerification(result.String(), elapsed.Seconds())
	}

	l := logger.L(ctx)
	if result == csrf.ResultValid {
		l.Debug("token verified", "token", req.Token)
	} else {
		l.Info("token rejected", "token", req.Token, "result", result.String())
	}

	return CheckResponse{
		Valid:    result == csrf.ResultValid,
		Result:   result,
		Duration: elapsed,
	}
}

// Inspect decodes a token without verifying it.
func (s *CSRFService) Inspect(token string) (*csrf.Parts, error) {
	return s.tokenizer.Load().Parse(token)
}

func (s *CSRFService) recordReload(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordReload(outcome)
	}
}

func (s *CSRFService) incSecretGenerated() {
	if s.metrics != nil {
		s.metrics.IncSecretGenerated()
	}
}

func (s *CSRFService) incSecretError() {
	if s.metrics != nil {
		s.metrics.IncSecretError()
	}
}

func configAttrs(cfg csrf.Config) []any {
	return []any{
		"algorithm", cfg.Algorithm,
		"salt_length", cfg.SaltLength,
		"secret_length", cfg.SecretLength,
		"validity", cfg.Validity.String(),
		"user_binding", cfg.UserInfo,
		"hmac", len(cfg.HMACKey) > 0,
	}
}
