package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/go-mp3"
	"github.com/hajimehoshi/oto/v2"

	applog "cascade/internal/log"
)

// decoderFactory opens a decoder for one container format. The returned
// reader yields interleaved 16-bit little-endian stereo PCM; rate is the
// decoded sample rate in Hz.
type decoderFactory func(f *os.File) (pcm io.Reader, rate int, err error)

// decoders maps a file extension (without dot) to its decoder. Only MP3 is
// wired; asking for anything else reports the decoder as a missing element,
// the same way an absent decode stage would.
var decoders = map[string]decoderFactory{
	"mp3": func(f *os.File) (io.Reader, int, error) {
		dec, err := mp3.NewDecoder(f)
		if err != nil {
			return nil, 0, err
		}
		return dec, dec.SampleRate(), nil
	},
}

// The process-wide audio output context. The speaker can only be opened
// once per process; every file pipeline shares it.
var (
	otoOnce  sync.Once
	otoCtx   *oto.Context
	otoReady chan struct{}
	otoErr   error
)

func outputContext(sampleRate int) (*oto.Context, chan struct{}, error) {
	otoOnce.Do(func() {
		otoCtx, otoReady, otoErr = oto.NewContext(sampleRate, 2, 2)
	})
	return otoCtx, otoReady, otoErr
}

// FilePipeline decodes an audio file, plays it on the default output and
// taps the decoded stream into a SampleSink at the analysis rate. The tap
// runs on the player's reader goroutine; that goroutine is the sample
// delivery thread the analyzer contract talks about.
type FilePipeline struct {
	file   *os.File
	player oto.Player
	ready  chan struct{}
	waited bool
}

// NewFilePipeline constructs the decode chain for path, delivering mono
// samples approximating analysisRate to sink. Each unavailable stage is
// reported as a MissingElementError naming the stage; on any error no
// pipeline exists and nothing is retained.
func NewFilePipeline(path string, sink SampleSink, analysisRate int) (*FilePipeline, error) {
	if sink == nil {
		return nil, fmt.Errorf("file pipeline requires a sample sink")
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	factory, ok := decoders[ext]
	if !ok {
		if ext == "" {
			ext = "unknown"
		}
		return nil, &MissingElementError{Element: ext + " decoder"}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source %q: %w", path, err)
	}

	pcm, decodedRate, err := factory(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}

	// Integer decimation stands in for a resample stage: 44100 Hz sources
	// decimate 4:1 to the 11025 Hz analysis rate. No low-pass is applied;
	// aliasing above the reduced Nyquist is accepted for display purposes.
	decim := decodedRate / analysisRate
	if decim < 1 {
		decim = 1
	}
	tap := newMonoTap(pcm, sink, decim)

	ctx, ready, err := outputContext(decodedRate)
	if err != nil {
		f.Close()
		applog.Errorf("Pipeline: audio output unavailable: %v", err)
		return nil, &MissingElementError{Element: "audio sink"}
	}

	applog.Infof("Pipeline: decoding %s at %d Hz, analysis decimation %d:1", path, decodedRate, decim)

	return &FilePipeline{
		file:   f,
		player: ctx.NewPlayer(tap),
		ready:  ready,
	}, nil
}

// Play starts or resumes playback and sample delivery.
func (p *FilePipeline) Play() error {
	if p.player == nil {
		return &StateError{Op: "play", Err: errAlreadyStopped}
	}
	if !p.waited {
		// The output device may still be warming up on the very first
		// play; the channel is closed once it is usable.
		<-p.ready
		p.waited = true
	}
	p.player.Play()
	return nil
}

// Pause suspends playback; the player stops pulling, so sample delivery
// pauses with it. The decode position is kept.
func (p *FilePipeline) Pause() error {
	if p.player == nil {
		return &StateError{Op: "pause", Err: errAlreadyStopped}
	}
	p.player.Pause()
	return nil
}

// Stop tears the pipeline down. The handle is unusable afterwards.
func (p *FilePipeline) Stop() error {
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil

	if cerr := p.file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return &StateError{Op: "stop", Err: err}
	}
	return nil
}
