package command

import (
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/jeremyhahn/go-authenticator/pkg/clock"
	"github.com/jeremyhahn/go-authenticator/pkg/otp"
	"github.com/jeremyhahn/go-authenticator/pkg/store"
	"github.com/jeremyhahn/go-authenticator/pkg/validator"
)

// AddRequest describes a new account. Key is ignored when Generate is set.
type AddRequest struct {
	Account   string `flag:"account" validate:"required"`
	Key       string `flag:"key" validate:"omitempty,base32"`
	Generate  bool   `flag:"generate"`
	Mode      string `flag:"mode" validate:"omitempty,otptype"`
	Algorithm string `flag:"algorithm" validate:"omitempty,algorithm"`
}

// DeleteRequest names the account to remove.
type DeleteRequest struct {
	Account string `flag:"account" validate:"required"`
}

// ViewRequest selects one account and the code length.
type ViewRequest struct {
	Account string `flag:"account" validate:"required"`
	Length  int    `flag:"length" validate:"min=1,max=9"`
}

// ListRequest sets the code length for every account.
type ListRequest struct {
	Length int `flag:"length" validate:"min=1,max=9"`
}

// Result is the outcome of generating a code for one account.
type Result struct {
	Name string
	Type otp.Type
	Code string
	Err  error
}

// Service runs commands against an open store.
type Service struct {
	store    *store.Store
	clock    clock.Clocker
	validate validator.Validator
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for TOTP codes.
func WithClock(c clock.Clocker) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithValidator replaces the request validator.
func WithValidator(v validator.Validator) Option {
	return func(s *Service) {
		s.validate = v
	}
}

// WithLogger sets the logger for per-operation diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New returns a Service for st.
func New(st *store.Store, opts ...Option) (*Service, error) {
	s := &Service{store: st}
	for _, opt := range opts {
		opt(s)
	}

	if s.clock == nil {
		s.clock = clock.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.validate == nil {
		v, err := validator.New()
		if err != nil {
			return nil, fmt.Errorf("command: failed to create validator: %w", err)
		}
		s.validate = v
	}

	return s, nil
}

// Add creates an account. It returns the account's secret, which is newly
// generated when req.Generate is set.
func (s *Service) Add(req AddRequest) (string, error) {
	req.Key = otp.NormalizeKey(req.Key)
	if err := s.validate.Validate(req); err != nil {
		return "", err
	}
	switch {
	case req.Key == "" && !req.Generate:
		return "", validator.ValidationError{"key": "key is required unless generate is set"}
	case req.Key != "" && req.Generate:
		return "", validator.ValidationError{"key": "key cannot be combined with generate"}
	}

	typ := otp.TypeTOTP
	if req.Mode != "" {
		t, err := otp.ParseType(req.Mode)
		if err != nil {
			return "", &store.AccountError{Name: req.Account, Err: err}
		}
		typ = t
	}
	alg := otp.DefaultAlgorithm
	if req.Algorithm != "" {
		a, err := otp.ParseAlgorithm(req.Algorithm)
		if err != nil {
			return "", &store.AccountError{Name: req.Account, Err: err}
		}
		alg = a
	}

	key := req.Key
	if req.Generate {
		secret, err := otp.GenerateSecret(req.Account, alg)
		if err != nil {
			return "", &store.AccountError{Name: req.Account, Err: err}
		}
		key = secret
	}

	if err := s.store.Add(store.NewAccount(req.Account, key, alg, typ)); err != nil {
		return "", err
	}

	s.logger.Debug("account added", "account", req.Account, "type", typ, "algorithm", alg)
	return key, nil
}

// Delete removes an account.
func (s *Service) Delete(req DeleteRequest) error {
	if err := s.validate.Validate(req); err != nil {
		return err
	}

	if err := s.store.Delete(req.Account); err != nil {
		return err
	}

	s.logger.Debug("account deleted", "account", req.Account)
	return nil
}

// View returns the current code for one account and advances its HOTP
// counter.
func (s *Service) View(req ViewRequest) (string, error) {
	if err := s.validate.Validate(req); err != nil {
		return "", err
	}

	acct, err := s.store.Get(req.Account)
	if err != nil {
		return "", err
	}

	return s.generate(acct, req.Length)
}

// List returns a code for every account in name order. A failure for one
// account is reported in its Result and does not stop the others.
func (s *Service) List(req ListRequest) ([]Result, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	results := make([]Result, 0, s.store.Len())
	for name, acct := range s.store.All() {
		code, err := s.generate(acct, req.Length)
		results = append(results, Result{
			Name: name,
			Type: acct.Type(),
			Code: code,
			Err:  err,
		})
	}

	if failed := lo.CountBy(results, func(r Result) bool { return r.Err != nil }); failed > 0 {
		s.logger.Debug("some accounts failed to generate", "failed", failed, "total", len(results))
	}
	return results, nil
}

// generate produces a code and, on success, advances an HOTP counter.
func (s *Service) generate(acct *store.Account, length int) (string, error) {
	engine, err := acct.Engine(length, s.clock)
	if err != nil {
		return "", &store.AccountError{Name: acct.Name, Err: err}
	}

	code := engine.Generate()
	acct.Advance()

	s.logger.Debug("code generated", "account", acct.Name, "type", acct.Type(), "counter", engine.Counter())
	return code, nil
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	return lo.Filter(results, func(r Result, _ int) bool {
		return r.Err != nil
	})
}
