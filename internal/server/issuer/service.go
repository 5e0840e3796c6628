// Package issuer implements password verification and token issuance.
package issuer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docsauth/internal/common"
	"github.com/dmitrijs2005/docsauth/internal/logging"
	"github.com/dmitrijs2005/docsauth/internal/server/auth"
	"github.com/dmitrijs2005/docsauth/internal/server/config"
	"github.com/dmitrijs2005/docsauth/internal/server/credential"
	"github.com/dmitrijs2005/docsauth/internal/server/metrics"
)

// Result is a freshly issued token and its lifetime in whole seconds.
type Result struct {
	Token     string
	ExpiresIn int64
}

// Service verifies submitted passwords against the configured credential
// record and mints tokens. It holds only immutable state after construction
// and is safe for concurrent use.
type Service struct {
	record       *credential.Record
	configErr    error
	secret       []byte
	environment  string
	validity     time.Duration
	failureDelay time.Duration
	logger       logging.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// NewService builds a Service from cfg. A missing or malformed credential
// record or signing secret does not fail construction: it is kept and
// reported by Ready and by every Issue call.
func NewService(cfg *config.Config, logger logging.Logger) *Service {
	s := &Service{
		secret:       []byte(cfg.SecretKey),
		environment:  cfg.Environment,
		validity:     cfg.TokenValidityDuration,
		failureDelay: cfg.FailureDelay,
		logger:       logger.With("component", "issuer"),
		now:          time.Now,
		sleep:        sleepContext,
	}

	switch {
	case cfg.PasswordHash == "":
		s.configErr = fmt.Errorf("%w: password hash is not set", common.ErrMisconfigured)
	case cfg.SecretKey == "":
		s.configErr = fmt.Errorf("%w: secret key is not set", common.ErrMisconfigured)
	default:
		record, err := credential.Parse(cfg.PasswordHash)
		if err != nil {
			s.configErr = fmt.Errorf("%w: %w", common.ErrMisconfigured, err)
		}
		s.record = record
	}

	return s
}

// Ready reports the configuration fault, if any, that will make every
// issuance fail.
func (s *Service) Ready() error {
	return s.configErr
}

// Issue verifies password and, on success, returns a signed token.
//
// Errors:
//   - common.ErrMissingPassword when password is empty
//   - common.ErrMisconfigured when the record or secret is unusable
//   - common.ErrorUnauthorized when the password does not match, returned
//     after the failure delay
func (s *Service) Issue(ctx context.Context, password []byte) (*Result, error) {

	if len(password) == 0 {
		metrics.RecordAttempt(metrics.OutcomeInvalidRequest)
		return nil, common.ErrMissingPassword
	}

	if s.configErr != nil {
		metrics.RecordAttempt(metrics.OutcomeMisconfigured)
		s.logger.Error(ctx, "issuer is not configured", "error", s.configErr)
		return nil, common.ErrMisconfigured
	}

	if !s.record.Verify(password) {
		metrics.RecordAttempt(metrics.OutcomeUnauthorized)
		s.logger.Warn(ctx, "authentication failed")
		s.sleep(ctx, s.failureDelay)
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(s.environment, s.secret, s.now(), s.validity)
	if err != nil {
		metrics.RecordAttempt(metrics.OutcomeMisconfigured)
		s.logger.Error(ctx, "failed to sign token", "error", err)
		if errors.Is(err, common.ErrMisconfigured) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	metrics.RecordAttempt(metrics.OutcomeSuccess)
	s.logger.Info(ctx, "token issued", "expires_in", int64(s.validity.Seconds()))

	return &Result{
		Token:     token,
		ExpiresIn: int64(s.validity.Seconds()),
	}, nil
}

// sleepContext pauses for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
