package speech

import (
	"context"
	"fmt"
	"os"
	"regexp"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// Synthesizer converts reply text to spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceName, languageCode, outPath string) error
}

// GoogleSpeech synthesizes MP3 audio via Google Cloud Text-to-Speech.
type GoogleSpeech struct {
	client *texttospeech.Client
}

var _ Synthesizer = &GoogleSpeech{}

// NewGoogleSpeech builds a client from inline service-account JSON, a
// credentials file path, or ambient credentials, in that order.
func NewGoogleSpeech(ctx context.Context, credentialsJSON, credentialsFile string) (*GoogleSpeech, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	} else if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create texttospeech client: %w", err)
	}
	return &GoogleSpeech{client: client}, nil
}

func (s *GoogleSpeech) Close() error {
	return s.client.Close()
}

var (
	boldPattern = regexp.MustCompile(`\*\*|\*`)
	linkPattern = regexp.MustCompile(`\[.*?\]\(.*?\)`)
)

// CleanText strips markdown emphasis and links that would be read aloud
// verbatim by the synthesizer.
func CleanText(text string) string {
	text = boldPattern.ReplaceAllString(text, "")
	text = linkPattern.ReplaceAllString(text, "")
	return text
}

// Synthesize writes the spoken rendition of text as MP3 to outPath.
func (s *GoogleSpeech) Synthesize(ctx context.Context, text, voiceName, languageCode, outPath string) error {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: CleanText(text)},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			Name:         voiceName,
			LanguageCode: languageCode,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return fmt.Errorf("synthesize speech: %w", err)
	}

	if err := os.WriteFile(outPath, resp.AudioContent, 0644); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}
	return nil
}
