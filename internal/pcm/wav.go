package pcm

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/srirammulukuntla11/vocalmaster/internal/core/domain"
)

// ErrInvalidContainer is returned when input is not a mono 16-bit PCM WAV.
var ErrInvalidContainer = errors.New("pcm: not a mono 16-bit PCM wav")

// Encode writes samples as a mono 16-bit PCM WAV. The encoder patches the
// chunk sizes after the data, so w must be seekable.
func Encode(w io.WriteSeeker, samples []int16, sampleRate int) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: Channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: BitDepth,
	}

	enc := wav.NewEncoder(w, sampleRate, BitDepth, Channels, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("pcm: write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("pcm: finalize wav: %w", err)
	}
	return nil
}

// Bytes encodes a track into an in-memory WAV.
func Bytes(t domain.Track) ([]byte, error) {
	f := newMemFile(EncodedSize(len(t.Samples)))
	if err := Encode(f, t.Samples, t.SampleRate); err != nil {
		return nil, err
	}
	return f.Bytes(), nil
}

// WriteFile encodes a track to path. The bytes on disk are identical to
// what Bytes returns. A partially written file is removed on failure.
func WriteFile(path string, t domain.Track) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pcm: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("pcm: close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return Encode(f, t.Samples, t.SampleRate)
}

// Decode reads a mono 16-bit PCM WAV back into a track holding only the
// sample rate and samples.
func Decode(r io.ReadSeeker) (domain.Track, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return domain.Track{}, ErrInvalidContainer
	}
	if d.BitDepth != BitDepth || d.NumChans != Channels || d.WavAudioFormat != wavFormatPCM {
		return domain.Track{}, fmt.Errorf("%w: %d-bit, %d channel(s), format %d",
			ErrInvalidContainer, d.BitDepth, d.NumChans, d.WavAudioFormat)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return domain.Track{}, fmt.Errorf("pcm: read samples: %w", err)
	}
	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}
	return domain.Track{SampleRate: int(d.SampleRate), Samples: samples}, nil
}
