// File: services/intelligence/speech.go
package intelligence

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"lexaid/utils"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// MaxDictationSeconds bounds synchronous recognition requests.
const MaxDictationSeconds = 60

// Transcriber turns dictated audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// WaveInfo is the subset of a WAV header the recognizer needs.
type WaveInfo struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	BitsPerSample uint16
	DataSize      uint32
}

// DurationSeconds is the playback length implied by the header.
func (w WaveInfo) DurationSeconds() float64 {
	bytesPerSecond := float64(w.SampleRate) * float64(w.NumChannels) * float64(w.BitsPerSample) / 8
	if bytesPerSecond == 0 {
		return 0
	}
	return float64(w.DataSize) / bytesPerSecond
}

// ParseWave reads the RIFF chunks of a WAV file, skipping any chunks that
// sit between "fmt " and "data".
func ParseWave(data []byte) (*WaveInfo, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errors.New("not a RIFF/WAVE file")
	}

	var info WaveInfo
	var haveFmt bool
	r := bytes.NewReader(data[12:])
	for {
		var id [4]byte
		var size uint32
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			break
		}
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, errors.New("truncated chunk header")
		}

		switch string(id[:]) {
		case "fmt ":
			if size < 16 {
				return nil, errors.New("invalid fmt chunk")
			}
			fields := []any{&info.AudioFormat, &info.NumChannels, &info.SampleRate, new(uint32), new(uint16), &info.BitsPerSample}
			for _, f := range fields {
				if err := binary.Read(r, binary.LittleEndian, f); err != nil {
					return nil, errors.New("truncated fmt chunk")
				}
			}
			if _, err := r.Seek(int64(size-16+size%2), io.SeekCurrent); err != nil {
				return nil, err
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, errors.New("data chunk before fmt chunk")
			}
			info.DataSize = size
			if remaining := uint32(r.Len()); info.DataSize > remaining {
				info.DataSize = remaining
			}
			return &info, nil
		default:
			if _, err := r.Seek(int64(size+size%2), io.SeekCurrent); err != nil {
				return nil, err
			}
		}
	}
	return nil, errors.New("no data chunk")
}

// ValidateDictation checks audio is 16-bit PCM, mono or stereo, and short
// enough for synchronous recognition.
func ValidateDictation(audio []byte) (*WaveInfo, error) {
	if len(audio) > utils.MaxAudioUploadBytes {
		return nil, utils.NewValidationError("audio", "file exceeds 5MB")
	}
	info, err := ParseWave(audio)
	if err != nil {
		return nil, utils.NewValidationError("audio", err.Error())
	}
	if info.AudioFormat != 1 || info.BitsPerSample != 16 {
		return nil, utils.NewValidationError("audio", "expected 16-bit PCM WAV")
	}
	if info.NumChannels < 1 || info.NumChannels > 2 {
		return nil, utils.NewValidationError("audio", "expected mono or stereo audio")
	}
	if info.DurationSeconds() > MaxDictationSeconds {
		return nil, utils.NewValidationError("audio", fmt.Sprintf("audio longer than %d seconds", MaxDictationSeconds))
	}
	return info, nil
}

// SpeechTranscriber uses Google Cloud Speech-to-Text synchronous recognition.
type SpeechTranscriber struct {
	client *speech.Client
}

func NewSpeechTranscriber(ctx context.Context, credentialsFile string) (*SpeechTranscriber, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech client: %w", err)
	}
	return &SpeechTranscriber{client: client}, nil
}

func (t *SpeechTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if t == nil || t.client == nil {
		return "", fmt.Errorf("speech recognition: %w", utils.ErrServiceUnavailable)
	}
	info, err := ValidateDictation(audio)
	if err != nil {
		return "", err
	}
	if language == "" {
		language = "en-NG"
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            int32(info.SampleRate),
			LanguageCode:               language,
			AudioChannelCount:          int32(info.NumChannels),
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := t.client.Recognize(ctx, req)
	if err != nil {
		return "", &utils.RemoteError{Service: "speech", Err: err}
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			transcript.WriteString(result.Alternatives[0].Transcript)
			transcript.WriteString(" ")
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}

func (t *SpeechTranscriber) Close() error {
	return t.client.Close()
}
