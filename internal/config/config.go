package config

// Core constants that define the analysis geometry and the defaults for the
// visualizer. The window size and sample rate fix the frame emission rate:
// 11025 Hz / 800 samples is ~13.8 spectral frames per second.
const (
	// WindowSize is the number of samples analyzed per spectral frame.
	WindowSize = 800

	// BinCount is the number of frequency bins per spectral frame
	// (the displayed half of the symmetric spectrum).
	BinCount = WindowSize / 2

	// HistoryRows is the number of spectral frames kept in the waterfall.
	HistoryRows = 80

	// Default values for the runtime configuration.
	DefaultSampleRate       = 11025 // Analysis rate the decode path reduces to (Hz)
	DefaultFrameCapacity    = 256   // Spectral frames buffered between analyzer and renderer
	DefaultDeviceID         = -1    // -1 selects the system default capture device
	DefaultWindowFunc       = "rectangular"
	DefaultFallbackFile     = "resources/fallback.mp3"
	DefaultRecordOutputFile = ""
	DefaultWSPort           = "8080"

	// Hardware limits for live capture.
	MinDeviceID   = -1
	MinSampleRate = 8000
	MaxSampleRate = 192000
)

// Config holds all runtime options. It is built from defaults, optionally a
// YAML file, environment overrides and finally command line flags.
type Config struct {
	Debug    bool   `yaml:"debug"`     // Verbose logging and debug overlays.
	LogLevel string `yaml:"log_level"` // "debug", "info", "warn", "error".

	Audio     AudioConfig     `yaml:"audio"`     // Decode/capture and analysis settings.
	Render    RenderConfig    `yaml:"render"`    // Window and presentation settings.
	Recording RecordingConfig `yaml:"recording"` // Mono PCM capture to WAV.
	Transport TransportConfig `yaml:"transport"` // Spectral frame broadcasting.

	// Command line only, never loaded from file.
	File    string `yaml:"-"` // Audio file to visualize.
	Command string `yaml:"-"` // One-off command ("list"), empty to run the visualizer.
}

// AudioConfig holds settings for the decode/capture pipeline and the analyzer.
type AudioConfig struct {
	SampleRate    int    `yaml:"sample_rate"`    // Analysis sample rate in Hz.
	DeviceID      int    `yaml:"device"`         // Capture device index, -1 for default.
	LiveInput     bool   `yaml:"live_input"`     // Capture from a device instead of decoding a file.
	WindowFunc    string `yaml:"window_func"`    // FFT window function name.
	FrameCapacity int    `yaml:"frame_capacity"` // Analyzer-to-renderer channel capacity in frames.
	FallbackFile  string `yaml:"fallback_file"`  // Source started by the play key when nothing is loaded.
}

// RenderConfig holds window and presentation settings.
type RenderConfig struct {
	FullScreen bool `yaml:"full_screen"` // Borderless full screen instead of windowed.
	Width      int  `yaml:"width"`       // Window width in pixels.
	Height     int  `yaml:"height"`      // Window height in pixels.
}

// RecordingConfig holds settings for recording the analyzed mono stream.
type RecordingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	OutputFile string `yaml:"output_file"`
}

// TransportConfig holds settings for broadcasting spectral frames.
type TransportConfig struct {
	WSEnabled       bool   `yaml:"ws_enabled"`        // Serve frames to websocket clients.
	WSPort          string `yaml:"ws_port"`           // Listen port for the websocket server.
	MinSendInterval string `yaml:"min_send_interval"` // Rate limit between broadcasts (duration string).
}

// New returns a Config populated with built-in defaults.
func New() *Config {
	return &Config{
		Debug:    false,
		LogLevel: "info",
		Audio: AudioConfig{
			SampleRate:    DefaultSampleRate,
			DeviceID:      DefaultDeviceID,
			LiveInput:     false,
			WindowFunc:    DefaultWindowFunc,
			FrameCapacity: DefaultFrameCapacity,
			FallbackFile:  DefaultFallbackFile,
		},
		Render: RenderConfig{
			FullScreen: false,
			Width:      1240,
			Height:     1024,
		},
		Recording: RecordingConfig{
			Enabled:    false,
			OutputFile: DefaultRecordOutputFile,
		},
		Transport: TransportConfig{
			WSEnabled:       false,
			WSPort:          DefaultWSPort,
			MinSendInterval: "33ms",
		},
	}
}
