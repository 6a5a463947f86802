package cmd

import (
	"os"
	"time"

	"cascade/internal/config"
	"cascade/pkg/build"

	"github.com/spf13/cobra"
)

// ParseArgs builds the runtime configuration from defaults, the optional
// YAML file, environment overrides and finally the command line. Flags win
// over everything, but only when actually set.
func ParseArgs() (*config.Config, error) {
	buildInfo := build.GetBuildFlags()
	options := config.New()

	var (
		configPath string
		file       string
		full       bool
		live       bool
		device     int
		record     bool
		output     string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         "Real-time audio spectrogram visualizer",
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			*options = *loaded

			options.File = file
			if cmd.Flags().Changed("full") {
				options.Render.FullScreen = full
			}
			if cmd.Flags().Changed("live") {
				options.Audio.LiveInput = live
			}
			if cmd.Flags().Changed("device") {
				options.Audio.DeviceID = device
				options.Audio.LiveInput = true
			}
			if cmd.Flags().Changed("record") {
				options.Recording.Enabled = record
			}
			if cmd.Flags().Changed("output") {
				options.Recording.OutputFile = output
			}
			if verbose {
				options.Debug = true
				options.LogLevel = "debug"
			}

			if options.Recording.Enabled && options.Recording.OutputFile == "" {
				options.Recording.OutputFile = "recording-" +
					time.Now().UTC().Format("02-01-2006-150405") + ".wav"
			}

			return options.Validate()
		},
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available audio devices",
		Run: func(cmd *cobra.Command, args []string) {
			options.Command = "list"
		},
	}
	rootCmd.AddCommand(listCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a YAML configuration file")

	rootCmd.Flags().StringVarP(&file, "file", "f", "",
		"Audio file to visualize")
	rootCmd.Flags().BoolVarP(&full, "full", "m", false,
		"Run in borderless full screen")

	rootCmd.Flags().BoolVarP(&live, "live", "i", false,
		"Analyze live input from a capture device instead of a file")
	rootCmd.Flags().IntVarP(&device, "device", "d", config.DefaultDeviceID,
		"Capture device ID, implies --live. Use 'list' to see available devices.")

	rootCmd.Flags().BoolVarP(&record, "record", "r", false,
		"Record the analyzed mono stream to a WAV file")
	rootCmd.Flags().StringVarP(&output, "output", "o", config.DefaultRecordOutputFile,
		"Recording file name. Default is recording-DD-MM-YYYY-HHMMSS.wav")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Show verbose output")

	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	return options, nil
}
