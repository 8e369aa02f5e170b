package session

import (
	"context"
	"sync/atomic"

	"github.com/skillsenselab/shellkit/identity"
	"github.com/skillsenselab/shellkit/logger"
	"github.com/skillsenselab/shellkit/observability"
	"github.com/skillsenselab/shellkit/pipeline"
	"github.com/skillsenselab/shellkit/stream"
	"github.com/skillsenselab/shellkit/util"
)

// Service is the auth session service. It owns the token stream for the
// lifetime of the process; there is no teardown.
type Service struct {
	binding identity.Binding
	log     *logger.Logger
	metrics *observability.Metrics

	tokens *stream.Broadcast[*string]

	// Diagnostic state, updated by the pump. Not a replay source.
	authed atomic.Bool
	last   atomic.Pointer[string]
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMetrics enables metric recording for token events and sign-outs.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates the session service for the given provider binding.
// With an Active binding the token pump starts immediately; with an
// Inactive binding the stream is a constant absent value that never
// completes on its own.
func NewService(binding identity.Binding, opts ...Option) *Service {
	s := &Service{binding: binding}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.GetGlobalLogger().WithComponent("session")
	}

	switch b := binding.(type) {
	case identity.Active:
		s.tokens = stream.New[*string]()
		go s.pump(b.Provider)
	default:
		s.tokens = stream.New[*string](stream.WithSeed[*string](func() *string { return nil }))
	}
	return s
}

// Subscribe returns a live subscription to the token stream. The
// subscriber observes only tokens emitted at-or-after this call; a nil
// value means no user is signed in.
func (s *Service) Subscribe() *stream.Subscription[*string] {
	return s.tokens.Subscribe()
}

// SignOut asks the provider to end the current session. Provider errors
// are returned to the caller unchanged; with no provider configured the
// call succeeds immediately with no effect.
func (s *Service) SignOut(ctx context.Context) error {
	ctx, span := observability.StartSpan(ctx, "session.sign_out")
	defer span.End()

	active, ok := s.binding.(identity.Active)
	if !ok {
		s.log.Debug("Sign-out with no provider configured, nothing to do")
		return nil
	}

	if err := active.Provider.SignOut(ctx); err != nil {
		span.RecordError(err)
		if s.metrics != nil {
			s.metrics.RecordSignOut(ctx, "error")
		}
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordSignOut(ctx, "ok")
	}
	return nil
}

// Authenticated reports whether the most recent token observation
// carried a token. Diagnostic only; consumers that need the token value
// must subscribe.
func (s *Service) Authenticated() bool {
	return s.authed.Load()
}

// CurrentClaims decodes the claims of the most recently observed token.
// Returns (nil, nil) when no token is present.
func (s *Service) CurrentClaims() (*identity.Claims, error) {
	tok := s.last.Load()
	if tok == nil {
		return nil, nil
	}
	return identity.DecodeClaims(*tok)
}

// Subscribers returns the current subscriber count.
func (s *Service) Subscribers() int {
	return s.tokens.Len()
}

// pump drives provider events into the broadcast. The translate stage is
// where provider failures become absent tokens; when the provider's
// event source terminates, the broadcast completes.
func (s *Service) pump(p identity.Provider) {
	src := pipeline.FromChannel(p.TokenEvents())
	mapped := pipeline.Map(src, s.translate)

	_ = pipeline.Drain(mapped, func(_ context.Context, tok *string) error {
		s.record(tok)
		s.tokens.Emit(tok)
		return nil
	}).Run(context.Background())

	s.log.Info("Provider token source terminated, completing token stream")
	s.tokens.Complete()
}

// translate maps one provider event to a stream value. A provider error
// is not fatal: it is emitted as an absent token and the pipeline
// continues.
func (s *Service) translate(ctx context.Context, ev identity.TokenEvent) (*string, error) {
	if ev.Err != nil {
		s.log.Warn("Provider token event failed, emitting absent", map[string]interface{}{
			"error": ev.Err.Error(),
		})
		if s.metrics != nil {
			s.metrics.RecordTokenEvent(ctx, "error")
		}
		return nil, nil
	}

	outcome := "absent"
	if ev.Token != nil {
		outcome = "token"
		s.log.Debug("Token updated", map[string]interface{}{
			"token": util.MaskSecret(*ev.Token),
		})
	}
	if s.metrics != nil {
		s.metrics.RecordTokenEvent(ctx, outcome)
	}
	return ev.Token, nil
}

func (s *Service) record(tok *string) {
	s.authed.Store(tok != nil)
	s.last.Store(tok)
}
