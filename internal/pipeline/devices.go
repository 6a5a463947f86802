package pipeline

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Initialize sets up the capture subsystem. Must be called before any
// device operation and paired with Terminate.
func Initialize() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	return nil
}

// Terminate shuts the capture subsystem down.
func Terminate() error {
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate PortAudio: %w", err)
	}
	return nil
}

// Device describes one capture-capable endpoint for display.
type Device struct {
	ID                int
	Name              string
	MaxInputChannels  int
	MaxOutputChannels int
	DefaultSampleRate float64
}

// Devices returns all audio devices on the host. It initializes and
// terminates the subsystem itself, so one-off commands can call it without
// pipeline setup.
func Devices() ([]Device, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	defer Terminate()

	infos, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}

	devices := make([]Device, len(infos))
	for i, info := range infos {
		devices[i] = Device{
			ID:                i,
			Name:              info.Name,
			MaxInputChannels:  info.MaxInputChannels,
			MaxOutputChannels: info.MaxOutputChannels,
			DefaultSampleRate: info.DefaultSampleRate,
		}
	}
	return devices, nil
}

// inputDevice resolves a device ID to its PortAudio info. -1 selects the
// system default input device.
func inputDevice(deviceID int) (*portaudio.DeviceInfo, error) {
	if deviceID == -1 {
		return portaudio.DefaultInputDevice()
	}

	infos, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	if deviceID < 0 || deviceID >= len(infos) {
		return nil, fmt.Errorf("invalid device ID: %d", deviceID)
	}
	return infos[deviceID], nil
}
