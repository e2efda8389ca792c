package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"ai-tutor-be/internal/model"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/llm"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.ConversationLog{},
		&model.Reflection{},
		&model.Profile{},
	))
	return db
}

// fakeLLM records every prompt it receives and plays back canned replies.
type fakeLLM struct {
	replies  []string
	err      error
	calls    [][]llm.Message
	lastOpts llm.Options
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls = append(f.calls, history)
	f.lastOpts = llm.Options{}
	for _, opt := range opts {
		opt(&f.lastOpts)
	}
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "ok", nil
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (f *fakeLLM) lastUserContent() string {
	if len(f.calls) == 0 {
		return ""
	}
	last := f.calls[len(f.calls)-1]
	return last[len(last)-1].Content
}

type fakeTranscriber struct {
	text string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	return f.text, nil
}

// fakeSynthesizer writes a marker file so the transcoder fake has an input.
type fakeSynthesizer struct{}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text, voiceName, languageCode, outPath string) error {
	return os.WriteFile(outPath, []byte("mp3:"+text), 0644)
}

type fakeTranscoder struct {
	seconds float64
}

func (f *fakeTranscoder) ConvertToAAC(ctx context.Context, inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0644)
}

func (f *fakeTranscoder) ConvertToWAV(ctx context.Context, inputPath, outputPath string) error {
	return f.ConvertToAAC(ctx, inputPath, outputPath)
}

func (f *fakeTranscoder) Duration(ctx context.Context, path string) (float64, error) {
	return f.seconds, nil
}

type fakeFetcher struct {
	content string
}

func (f *fakeFetcher) GetMessageContent(ctx context.Context, messageId string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.content)), nil
}

// nopLogger satisfies ILogger for tests.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, fmt.Errorf("not implemented")
}

var _ logger.ILogger = nopLogger{}
