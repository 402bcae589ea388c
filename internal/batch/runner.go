package batch

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/gtranslate/internal/translation"
)

// Translator is the part of translation.Translator the runner needs.
type Translator interface {
	Translate(ctx context.Context, timeout time.Duration, req translation.Request) (string, error)
}

// Options tunes a Runner.
type Options struct {
	// Workers bounds the number of requests in flight.
	Workers int
	// MaxFailures consecutive upstream failures open the breaker and the
	// remaining entries are skipped. Zero disables the breaker.
	MaxFailures int
	// Timeout is passed to every Translate call.
	Timeout time.Duration
}

// Result is the outcome for one entry.
type Result struct {
	Entry       Entry
	Translation string
	Provided    bool
	Skipped     bool
	Err         error
}

// Summary counts results by outcome.
type Summary struct {
	Total      int
	Translated int
	Provided   int
	Failed     int
	Skipped    int
}

// Runner translates batch entries through one shared Translator.
type Runner struct {
	translator Translator
	base       translation.Request
	opts       Options
	breaker    *gobreaker.CircuitBreaker
	logger     zerolog.Logger
}

// NewRunner creates a runner. base carries variant, client and language
// pair; each entry only sets the query.
func NewRunner(t Translator, base translation.Request, opts Options, logger zerolog.Logger) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	r := &Runner{
		translator: t,
		base:       base,
		opts:       opts,
		logger:     logger,
	}

	if opts.MaxFailures > 0 {
		maxFailures := uint32(opts.MaxFailures)
		r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "upstream",
			// Stay open for the rest of the batch once tripped.
			Timeout: 24 * time.Hour,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			},
		})
	}

	return r
}

// Run translates entries and returns one result per entry in input order.
func (r *Runner) Run(ctx context.Context, entries []Entry) ([]Result, Summary) {
	results := make([]Result, len(entries))

	var g errgroup.Group
	g.SetLimit(r.opts.Workers)

	for i, entry := range entries {
		i, entry := i, entry
		if !entry.NeedsTranslation {
			results[i] = Result{Entry: entry, Translation: entry.Translation, Provided: true}
			continue
		}

		g.Go(func() error {
			results[i] = r.translate(ctx, entry)
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{Total: len(results)}
	for _, res := range results {
		switch {
		case res.Provided:
			summary.Provided++
		case res.Skipped:
			summary.Skipped++
		case res.Err != nil:
			summary.Failed++
		default:
			summary.Translated++
		}
	}

	return results, summary
}

func (r *Runner) translate(ctx context.Context, entry Entry) Result {
	req := r.base.WithQuery(entry.Text)

	if err := ctx.Err(); err != nil {
		return Result{Entry: entry, Skipped: true, Err: err}
	}

	if r.breaker == nil {
		text, err := r.translator.Translate(ctx, r.opts.Timeout, req)
		return Result{Entry: entry, Translation: text, Err: err}
	}

	out, err := r.breaker.Execute(func() (interface{}, error) {
		return r.translator.Translate(ctx, r.opts.Timeout, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		r.logger.Debug().Int("line", entry.Line).Msg("skipping entry, breaker open")
		return Result{Entry: entry, Skipped: true, Err: err}
	}
	if err != nil {
		r.logger.Debug().Err(err).Int("line", entry.Line).Msg("translation failed")
		return Result{Entry: entry, Err: err}
	}

	return Result{Entry: entry, Translation: out.(string)}
}
