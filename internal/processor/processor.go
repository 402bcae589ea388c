package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/gtranslate/internal/batch"
	"codeberg.org/snonux/gtranslate/internal/cli"
	"codeberg.org/snonux/gtranslate/internal/history"
	"codeberg.org/snonux/gtranslate/internal/langdetect"
	"codeberg.org/snonux/gtranslate/internal/language"
	"codeberg.org/snonux/gtranslate/internal/translation"
)

// Processor handles the main translation logic
type Processor struct {
	flags      *cli.Flags
	translator batch.Translator
	store      *history.Store
	logger     zerolog.Logger
}

// NewProcessor creates a new processor. store may be nil, in which case
// nothing is recorded.
func NewProcessor(flags *cli.Flags, translator batch.Translator, store *history.Store, logger zerolog.Logger) *Processor {
	return &Processor{
		flags:      flags,
		translator: translator,
		store:      store,
		logger:     logger,
	}
}

// BaseRequest builds the request template from the flags. Only the query is
// left empty.
func (p *Processor) BaseRequest() (translation.Request, error) {
	variant, err := translation.ParseVariant(p.flags.Variant)
	if err != nil {
		return translation.Request{}, err
	}

	req := translation.NewRequest(variant).
		WithSourceLang(language.Resolve(p.flags.Source)).
		WithTargetLang(language.Resolve(p.flags.Target))
	if client := strings.TrimSpace(p.flags.Client); client != "" {
		req = req.WithClient(client)
	}

	return req, nil
}

// ReadInput joins the command line arguments into one text. A single "-"
// reads the text from in.
func ReadInput(args []string, in io.Reader) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	return strings.TrimSpace(strings.Join(args, " ")), nil
}

// ProcessSingle translates text and prints the result
func (p *Processor) ProcessSingle(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("nothing to translate")
	}

	base, err := p.BaseRequest()
	if err != nil {
		return err
	}
	req := base.WithQuery(text)

	result, err := p.translator.Translate(ctx, p.flags.Timeout, req)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	fmt.Println(result)
	p.record(ctx, req, result)

	return nil
}

// ProcessBatch translates every entry of the batch file and prints a summary
func (p *Processor) ProcessBatch(ctx context.Context) error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	base, err := p.BaseRequest()
	if err != nil {
		return err
	}

	runner := batch.NewRunner(p.translator, base, batch.Options{
		Workers:     p.flags.Workers,
		MaxFailures: p.flags.MaxFailures,
		Timeout:     p.flags.Timeout,
	}, p.logger)

	results, summary := runner.Run(ctx, entries)

	for _, res := range results {
		switch {
		case res.Provided:
			fmt.Printf("%s = %s (provided)\n", res.Entry.Text, res.Translation)
		case res.Skipped:
			fmt.Fprintf(os.Stderr, "Skipped line %d '%s': %v\n", res.Entry.Line, res.Entry.Text, res.Err)
		case res.Err != nil:
			fmt.Fprintf(os.Stderr, "Error translating line %d '%s': %v\n", res.Entry.Line, res.Entry.Text, res.Err)
		default:
			fmt.Printf("%s = %s\n", res.Entry.Text, res.Translation)
			p.record(ctx, base.WithQuery(res.Entry.Text), res.Translation)
		}
	}

	// Print summary
	fmt.Printf("\n=== Batch Translation Summary ===\n")
	fmt.Printf("Total entries: %d\n", summary.Total)
	fmt.Printf("Translated: %d\n", summary.Translated)
	fmt.Printf("Provided: %d\n", summary.Provided)
	if summary.Skipped > 0 {
		fmt.Printf("Skipped: %d\n", summary.Skipped)
	}
	if summary.Failed > 0 {
		fmt.Printf("Errors: %d\n", summary.Failed)
	}
	fmt.Printf("=================================\n")

	if summary.Translated == 0 && summary.Failed+summary.Skipped > 0 {
		return fmt.Errorf("no entries translated: %d failed, %d skipped", summary.Failed, summary.Skipped)
	}

	return nil
}

// ShowHistory prints the most recent translations
func (p *Processor) ShowHistory(ctx context.Context, limit int) error {
	if p.store == nil {
		return fmt.Errorf("history is disabled")
	}

	entries, err := p.store.Recent(ctx, limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No translations recorded yet")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %s->%s  [%s]  %s => %s\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.SourceLang, e.TargetLang, e.Variant, e.Query, e.Result)
	}

	return nil
}

// DetectLanguage prints the locally detected language of text and the
// detector's confidence
func (p *Processor) DetectLanguage(text string) error {
	guess, ok := langdetect.Detect(text, p.flags.MinConfidence)
	if !ok {
		return fmt.Errorf("could not detect the language of %q with confidence >= %.2f", text, p.flags.MinConfidence)
	}

	fmt.Printf("%s %.2f\n", guess.Code, guess.Confidence)
	return nil
}

func (p *Processor) record(ctx context.Context, req translation.Request, result string) {
	if p.store == nil || p.flags.NoHistory {
		return
	}

	err := p.store.Record(ctx, history.Entry{
		Variant:    req.Variant().String(),
		SourceLang: req.SourceLang(),
		TargetLang: req.TargetLang(),
		Query:      req.Query(),
		Result:     result,
	})
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to record translation")
	}
}
