// Package speech wraps the OpenAI audio endpoints: Whisper for
// transcribing spoken answers and the TTS endpoint for word audio.
package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader) (string, error)
}

// Synthesizer renders text as spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// TranscriptionError wraps a failed speech-to-text call.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// SynthesisError wraps a failed text-to-speech call.
type SynthesisError struct {
	Text string
	Err  error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesis failed for %q: %v", e.Text, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// audioClient is the slice of the OpenAI client the service needs.
// Narrowed so tests can substitute a fake.
type audioClient interface {
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
	CreateSpeech(ctx context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error)
}

// Service implements Transcriber and Synthesizer against the OpenAI
// audio API, with an in-memory cache so each word's audio is rendered
// once per run.
type Service struct {
	client audioClient
	voice  openai.SpeechVoice

	mu    sync.Mutex
	cache map[string][]byte
}

// NewService builds a speech service from an API key.
func NewService(apiKey string) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("speech: API key is required")
	}
	return newService(openai.NewClient(apiKey)), nil
}

func newService(client audioClient) *Service {
	return &Service{
		client: client,
		voice:  openai.VoiceAlloy,
		cache:  make(map[string][]byte),
	}
}

// Transcribe sends recorded audio to Whisper and returns the trimmed
// transcript.
func (s *Service) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   audio,
		FilePath: "input.wav",
		Language: "en",
	})
	if err != nil {
		return "", &TranscriptionError{Err: err}
	}
	return strings.TrimSpace(resp.Text), nil
}

// Synthesize renders text as MP3 audio, serving repeats from the
// cache.
func (s *Service) Synthesize(ctx context.Context, text string) ([]byte, error) {
	s.mu.Lock()
	if data, ok := s.cache[text]; ok {
		s.mu.Unlock()
		return data, nil
	}
	s.mu.Unlock()

	body, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.TTSModel1,
		Input: text,
		Voice: s.voice,
	})
	if err != nil {
		return nil, &SynthesisError{Text: text, Err: err}
	}
	defer body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return nil, &SynthesisError{Text: text, Err: err}
	}
	data := buf.Bytes()

	s.mu.Lock()
	s.cache[text] = data
	s.mu.Unlock()
	return data, nil
}

// Prebuild renders audio for each text up front so drill playback
// never waits on the network. Individual failures are collected; the
// drill can still run without audio for those words.
func (s *Service) Prebuild(ctx context.Context, texts []string) []error {
	var errs []error
	for _, text := range texts {
		if _, err := s.Synthesize(ctx, text); err != nil {
			errs = append(errs, err)
		}
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
	}
	return errs
}
