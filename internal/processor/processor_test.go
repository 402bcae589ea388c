package processor

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/gtranslate/internal/cli"
	"codeberg.org/snonux/gtranslate/internal/history"
	"codeberg.org/snonux/gtranslate/internal/testutil"
	"codeberg.org/snonux/gtranslate/internal/translation"
)

func newTestProcessor(t *testing.T, mock *testutil.MockTranslator) (*Processor, *cli.Flags, *history.Store) {
	t.Helper()

	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	flags := cli.NewFlags()
	flags.Source = "NL"
	flags.Target = "tr"
	flags.Timeout = time.Second

	return NewProcessor(flags, mock, store, zerolog.Nop()), flags, store
}

func TestBaseRequest(t *testing.T) {
	p, flags, _ := newTestProcessor(t, &testutil.MockTranslator{})

	req, err := p.BaseRequest()
	require.NoError(t, err)
	assert.Equal(t, translation.Classic, req.Variant())
	assert.Equal(t, "gtx", req.Client())
	assert.Equal(t, "nl", req.SourceLang())
	assert.Equal(t, "tr", req.TargetLang())
	assert.Equal(t, "", req.Query())

	flags.Variant = "compact"
	flags.Client = "custom"
	req, err = p.BaseRequest()
	require.NoError(t, err)
	assert.Equal(t, translation.Compact, req.Variant())
	assert.Equal(t, "custom", req.Client())

	flags.Variant = "bogus"
	_, err = p.BaseRequest()
	assert.Error(t, err)
}

func TestReadInput(t *testing.T) {
	text, err := ReadInput([]string{"hallo", "ik", "ga"}, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "hallo ik ga", text)

	text, err = ReadInput([]string{"-"}, strings.NewReader("  goedemorgen\n"))
	require.NoError(t, err)
	assert.Equal(t, "goedemorgen", text)
}

func TestProcessSingle(t *testing.T) {
	mock := &testutil.MockTranslator{
		Translations: map[string]string{"hallo ik ga vandaag hardlopen": "merhaba bugün koşuya gideceğim"},
	}
	p, _, store := newTestProcessor(t, mock)
	ctx := context.Background()

	var err error
	output := testutil.CaptureOutput(t, func() {
		err = p.ProcessSingle(ctx, "hallo ik ga vandaag hardlopen")
	})
	require.NoError(t, err)
	assert.Equal(t, "merhaba bugün koşuya gideceğim\n", output)
	assert.Equal(t, []string{"Translate: hallo ik ga vandaag hardlopen (nl->tr, classic)"}, mock.Calls)

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "classic", entries[0].Variant)
	assert.Equal(t, "nl", entries[0].SourceLang)
	assert.Equal(t, "merhaba bugün koşuya gideceğim", entries[0].Result)
}

func TestProcessSingle_Errors(t *testing.T) {
	mock := &testutil.MockTranslator{
		Errors: map[string]error{"kapot": &translation.StatusError{StatusCode: 429}},
	}
	p, flags, store := newTestProcessor(t, mock)
	ctx := context.Background()

	err := p.ProcessSingle(ctx, "kapot")
	require.Error(t, err)
	assert.True(t, errors.Is(err, translation.ErrInvalidResponse))

	assert.Error(t, p.ProcessSingle(ctx, ""))
	assert.Equal(t, 1, mock.CallCount())

	flags.NoHistory = true
	testutil.CaptureOutput(t, func() {
		require.NoError(t, p.ProcessSingle(ctx, "hallo"))
	})

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessBatch(t *testing.T) {
	mock := &testutil.MockTranslator{
		Translations: map[string]string{"hallo": "merhaba"},
		Errors:       map[string]error{"kapot": errors.New("boom")},
	}
	p, flags, store := newTestProcessor(t, mock)
	flags.MaxFailures = 0

	flags.BatchFile = filepath.Join(t.TempDir(), "batch.txt")
	testutil.CreateTestFile(t, flags.BatchFile, []byte("# words\nhallo\nkat = kedi\nkapot\n"))

	var err error
	output := testutil.CaptureOutput(t, func() {
		err = p.ProcessBatch(context.Background())
	})
	require.NoError(t, err)

	testutil.AssertContains(t, output, "hallo = merhaba\n")
	testutil.AssertContains(t, output, "kat = kedi (provided)\n")
	testutil.AssertContains(t, output, "Total entries: 3")
	testutil.AssertContains(t, output, "Translated: 1")
	testutil.AssertContains(t, output, "Provided: 1")
	testutil.AssertContains(t, output, "Errors: 1")
	assert.Equal(t, 2, mock.CallCount())

	entries, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hallo", entries[0].Query)
}

func TestProcessBatch_NothingTranslated(t *testing.T) {
	mock := &testutil.MockTranslator{
		Errors: map[string]error{
			"hallo": &translation.StatusError{StatusCode: 429},
			"kapot": &translation.StatusError{StatusCode: 429},
		},
	}
	p, flags, _ := newTestProcessor(t, mock)
	flags.MaxFailures = 1

	flags.BatchFile = filepath.Join(t.TempDir(), "batch.txt")
	testutil.CreateTestFile(t, flags.BatchFile, []byte("hallo\nkat = kedi\nkapot\n"))

	var err error
	output := testutil.CaptureOutput(t, func() {
		err = p.ProcessBatch(context.Background())
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entries translated")
	testutil.AssertContains(t, output, "Translated: 0")
	testutil.AssertContains(t, output, "Provided: 1")
}

func TestProcessBatch_OnlyProvided(t *testing.T) {
	mock := &testutil.MockTranslator{}
	p, flags, _ := newTestProcessor(t, mock)

	flags.BatchFile = filepath.Join(t.TempDir(), "batch.txt")
	testutil.CreateTestFile(t, flags.BatchFile, []byte("kat = kedi\n"))

	testutil.CaptureOutput(t, func() {
		assert.NoError(t, p.ProcessBatch(context.Background()))
	})
	assert.Equal(t, 0, mock.CallCount())
}

func TestProcessBatch_InvalidFile(t *testing.T) {
	p, flags, _ := newTestProcessor(t, &testutil.MockTranslator{})
	flags.BatchFile = "/nonexistent/file.txt"

	assert.Error(t, p.ProcessBatch(context.Background()))
}

func TestShowHistory(t *testing.T) {
	p, _, store := newTestProcessor(t, &testutil.MockTranslator{})
	ctx := context.Background()

	output := testutil.CaptureOutput(t, func() {
		require.NoError(t, p.ShowHistory(ctx, 5))
	})
	assert.Equal(t, "No translations recorded yet\n", output)

	require.NoError(t, store.Record(ctx, history.Entry{
		CreatedAt:  time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local),
		Variant:    "compact",
		SourceLang: "nl",
		TargetLang: "tr",
		Query:      "hallo",
		Result:     "merhaba",
	}))

	output = testutil.CaptureOutput(t, func() {
		require.NoError(t, p.ShowHistory(ctx, 5))
	})
	assert.Equal(t, "2024-05-01 09:30  nl->tr  [compact]  hallo => merhaba\n", output)

	disabled := NewProcessor(cli.NewFlags(), &testutil.MockTranslator{}, nil, zerolog.Nop())
	assert.Error(t, disabled.ShowHistory(ctx, 5))
}

func TestDetectLanguage(t *testing.T) {
	p, flags, _ := newTestProcessor(t, &testutil.MockTranslator{})

	err := p.DetectLanguage("ok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not detect")

	if testing.Short() {
		t.Skip("Skipping language model load in short mode")
	}

	output := testutil.CaptureOutput(t, func() {
		require.NoError(t, p.DetectLanguage("hallo ik ga vandaag hardlopen in het park"))
	})
	assert.True(t, strings.HasPrefix(output, "nl "), output)

	flags.MinConfidence = 1.01
	assert.Error(t, p.DetectLanguage("hallo ik ga vandaag hardlopen in het park"))
}
