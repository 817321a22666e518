package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	speechapi "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// GoogleTranscriber streams LINEAR16 audio to Google Cloud Speech-to-Text.
type GoogleTranscriber struct {
	client     *speechapi.Client
	language   string
	sampleRate int32
}

// NewGoogleTranscriber creates a client using application default credentials.
func NewGoogleTranscriber(ctx context.Context, language string, sampleRate int) (*GoogleTranscriber, error) {
	client, err := speechapi.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating Google speech client: %w", err)
	}
	return &GoogleTranscriber{client: client, language: language, sampleRate: int32(sampleRate)}, nil
}

// Transcribe implements Transcriber.
func (g *GoogleTranscriber) Transcribe(ctx context.Context, audio <-chan []byte, onResult func(Result)) error {
	stream, err := g.client.StreamingRecognize(ctx)
	if err != nil {
		return fmt.Errorf("creating streaming client: %w", err)
	}

	err = stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_StreamingConfig{
			StreamingConfig: &speechpb.StreamingRecognitionConfig{
				Config: &speechpb.RecognitionConfig{
					Encoding:        speechpb.RecognitionConfig_LINEAR16,
					SampleRateHertz: g.sampleRate,
					LanguageCode:    g.language,
				},
				InterimResults: true,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sending streaming config: %w", err)
	}

	sendErr := make(chan error, 1)
	go func() {
		for chunk := range audio {
			err := stream.Send(&speechpb.StreamingRecognizeRequest{
				StreamingRequest: &speechpb.StreamingRecognizeRequest_AudioContent{AudioContent: chunk},
			})
			if err != nil {
				sendErr <- fmt.Errorf("sending audio: %w", err)
				return
			}
		}
		sendErr <- stream.CloseSend()
	}()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("receiving results: %w", err)
		}
		if st := resp.GetError(); st != nil {
			return fmt.Errorf("recognition failed: %s", st.GetMessage())
		}

		var final, interim strings.Builder
		for _, r := range resp.GetResults() {
			alts := r.GetAlternatives()
			if len(alts) == 0 {
				continue
			}
			if r.GetIsFinal() {
				final.WriteString(alts[0].GetTranscript())
			} else {
				interim.WriteString(alts[0].GetTranscript())
			}
		}
		if final.Len() > 0 {
			onResult(Result{Text: final.String(), Final: true})
		}
		if interim.Len() > 0 {
			onResult(Result{Text: interim.String()})
		}
	}
	return <-sendErr
}

// Close releases the underlying client.
func (g *GoogleTranscriber) Close() error {
	return g.client.Close()
}

// GoogleSynthesizer renders MP3 audio with Google Cloud Text-to-Speech.
type GoogleSynthesizer struct {
	client   *texttospeech.Client
	language string
}

// NewGoogleSynthesizer creates a client using application default credentials.
// language is used when a voice carries no language of its own.
func NewGoogleSynthesizer(ctx context.Context, language string) (*GoogleSynthesizer, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating Google tts client: %w", err)
	}
	return &GoogleSynthesizer{client: client, language: language}, nil
}

// Voices implements Synthesizer.
func (g *GoogleSynthesizer) Voices(ctx context.Context) ([]Voice, error) {
	resp, err := g.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{})
	if err != nil {
		return nil, fmt.Errorf("listing voices: %w", err)
	}
	voices := make([]Voice, 0, len(resp.GetVoices()))
	for _, v := range resp.GetVoices() {
		lang := ""
		if codes := v.GetLanguageCodes(); len(codes) > 0 {
			lang = codes[0]
		}
		voices = append(voices, Voice{
			Name:     v.GetName(),
			Language: lang,
			Gender:   strings.ToLower(v.GetSsmlGender().String()),
		})
	}
	return voices, nil
}

// Synthesize implements Synthesizer.
func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error) {
	lang := voice.Language
	if lang == "" {
		lang = g.language
	}
	req := texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{
				Text: text,
			},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: lang,
			Name:         voice.Name,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}
	resp, err := g.client.SynthesizeSpeech(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("synthesizing speech: %w", err)
	}
	return resp.GetAudioContent(), nil
}

// Close releases the underlying client.
func (g *GoogleSynthesizer) Close() error {
	return g.client.Close()
}
