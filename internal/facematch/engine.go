package facematch

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/kozaktomas/face-attendance/internal/constants"
	"github.com/kozaktomas/face-attendance/internal/fingerprint"
	"github.com/kozaktomas/face-attendance/internal/profiles"
	"go.uber.org/zap"
)

// ReferenceSource lists reference photos in match order and reads them.
type ReferenceSource interface {
	List() ([]profiles.Profile, error)
	Read(p profiles.Profile) ([]byte, error)
}

// CooldownChecker reports whether an identity was recorded too recently.
type CooldownChecker interface {
	Suppressed(name string) bool
}

// Engine scores a captured photo against the reference photos.
// The first reference above threshold wins; there is no best-match search.
type Engine struct {
	source    ReferenceSource
	cooldown  CooldownChecker
	normalize fingerprint.Options
	threshold float64
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithThreshold sets the acceptance threshold.
func WithThreshold(threshold float64) Option {
	return func(e *Engine) {
		e.threshold = threshold
	}
}

// WithNormalizeOptions sets how photos are normalized before scoring.
func WithNormalizeOptions(opts fingerprint.Options) Option {
	return func(e *Engine) {
		e.normalize = opts
	}
}

// WithCooldown makes matches of recently recorded identities come back suppressed.
func WithCooldown(c CooldownChecker) Option {
	return func(e *Engine) {
		e.cooldown = c
	}
}

// WithLogger sets the logger used for skipped references and outcomes.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an engine over source.
func NewEngine(source ReferenceSource, opts ...Option) *Engine {
	e := &Engine{
		source:    source,
		normalize: fingerprint.DefaultOptions(),
		threshold: constants.DefaultMatchThreshold,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Threshold returns the acceptance threshold.
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// Recognize identifies the person in photo. An undecodable photo is reported
// as OutcomeUndecodable, not as an error; errors are returned only when the
// references cannot be listed or ctx is done.
func (e *Engine) Recognize(ctx context.Context, photo []byte) (Result, error) {
	captured, err := fingerprint.Normalize(photo, e.normalize)
	if err != nil {
		e.logger.Info("captured photo could not be decoded", zap.Error(err))
		return Result{Outcome: OutcomeUndecodable, Err: err}, nil
	}

	references, err := e.source.List()
	if err != nil {
		return Result{}, fmt.Errorf("listing references: %w", err)
	}

	result := Result{Outcome: OutcomeUnknown, Score: math.Inf(-1)}
	for _, ref := range references {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("recognition cancelled: %w", err)
		}

		score, ok := e.score(captured, ref)
		if !ok {
			result.Skipped++
			continue
		}
		result.Compared++

		if !fingerprint.Matches(score, e.threshold) {
			result.Score = max(result.Score, score)
			continue
		}

		result.Outcome = OutcomeMatched
		result.Identity = ref.Identity
		result.Profile = ref
		result.Score = score
		if e.cooldown != nil && e.cooldown.Suppressed(ref.Identity) {
			result.Outcome = OutcomeSuppressed
		}
		break
	}

	if result.Compared == 0 {
		result.Score = 0
	}

	e.logger.Debug("recognition finished",
		zap.String("outcome", string(result.Outcome)),
		zap.String("identity", result.Identity),
		zap.Float64("score", result.Score),
		zap.Int("compared", result.Compared),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// score normalizes a reference and correlates it with the captured image.
// ok is false when the reference cannot be used.
func (e *Engine) score(captured *image.Gray, ref profiles.Profile) (float64, bool) {
	data, err := e.source.Read(ref)
	if err != nil {
		e.logger.Warn("skipping unreadable reference", zap.String("file", ref.Filename), zap.Error(err))
		return 0, false
	}

	reference, err := fingerprint.Normalize(data, e.normalize)
	if err != nil {
		e.logger.Warn("skipping undecodable reference", zap.String("file", ref.Filename), zap.Error(err))
		return 0, false
	}

	score, err := fingerprint.Correlation(captured, reference)
	if err != nil {
		e.logger.Warn("skipping reference", zap.String("file", ref.Filename), zap.Error(err))
		return 0, false
	}
	return score, true
}
