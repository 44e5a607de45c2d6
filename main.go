package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/app"
	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/config"
	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/radar"
	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/transport"
	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/window"
)

var (
	flagPort      string
	flagBaud      int
	flagDemo      bool
	flagWindow    bool
	flagConfig    string
	flagLogFile   string
	flagExportDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ultrasonic-radar",
		Short: "Ultrasonic Radar - live radar display for a sweeping range sensor",
		Long: `Ultrasonic Radar reads angle:distance records from a servo-mounted
ultrasonic sensor over a serial link and draws them as a radar sweep with a
fading trail, in the terminal or in a desktop window.

Use --demo to run against a simulated sensor without hardware.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&flagPort, "port", config.DefaultPort, "Serial port the sensor is attached to")
	rootCmd.Flags().IntVar(&flagBaud, "baud", config.DefaultBaud, "Serial baud rate")
	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run against a simulated sensor (no hardware required)")
	rootCmd.Flags().BoolVar(&flagWindow, "window", false, "Draw in a desktop window instead of the terminal")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "YAML settings file; flags given explicitly override it")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while the terminal UI runs")
	rootCmd.Flags().StringVar(&flagExportDir, "export-dir", "", "Directory for frame and range map exports")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "ports",
		Short: "List available serial ports",
		Args:  cobra.NoArgs,
		RunE:  listPorts,
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(settings)
	if err != nil {
		return err
	}
	defer closeLog()

	src, sourceName, err := openSource(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "Check the sensor is plugged in, then try one of:")
		fmt.Fprintln(os.Stderr, "  ultrasonic-radar ports                 (list serial ports)")
		fmt.Fprintln(os.Stderr, "  ultrasonic-radar --port /dev/ttyACM0")
		fmt.Fprintln(os.Stderr, "  ultrasonic-radar --demo                (simulated sensor)")
		return err
	}

	renderer, err := radar.NewRenderer()
	if err != nil {
		src.Close()
		return err
	}
	session := app.NewSession(renderer, settings.ExportDir)
	log.Printf("reading from %s", sourceName)

	if settings.Window {
		err = window.Run(session, src)
	} else {
		err = runTerminal(session, src, sourceName)
	}
	if err != nil {
		return err
	}

	paths, err := session.Finish()
	for _, p := range paths {
		fmt.Printf("Range map written to %s\n", p)
	}
	return err
}

func runTerminal(session *app.Session, src transport.Source, sourceName string) error {
	model := app.New(session, src, sourceName)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	// Start the pump with a reference to the tea program
	model.StartSource(p)
	defer model.StopSource()

	_, err := p.Run()
	return err
}

// resolveSettings loads the settings file, if any, and applies the flags the
// user set explicitly on top of it.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	settings := config.DefaultSettings()
	if flagConfig != "" {
		loaded, err := config.LoadSettings(flagConfig)
		if err != nil {
			return settings, err
		}
		settings = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		settings.Port = flagPort
	}
	if flags.Changed("baud") {
		settings.Baud = flagBaud
	}
	if flags.Changed("demo") {
		settings.Demo = flagDemo
	}
	if flags.Changed("window") {
		settings.Window = flagWindow
	}
	if flags.Changed("log-file") {
		settings.LogFile = flagLogFile
	}
	if flags.Changed("export-dir") {
		settings.ExportDir = flagExportDir
	}
	return settings, settings.Validate()
}

// setupLogging points the standard logger somewhere that will not tear the
// terminal UI.
func setupLogging(settings config.Settings) (func(), error) {
	switch {
	case settings.LogFile != "":
		f, err := tea.LogToFile(settings.LogFile, "radar")
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		return func() { f.Close() }, nil
	case settings.Window:
		log.SetOutput(os.Stderr)
	default:
		log.SetOutput(io.Discard)
	}
	return func() {}, nil
}

func openSource(settings config.Settings) (transport.Source, string, error) {
	if settings.Demo {
		demo := transport.NewDemo(time.Now().UnixNano(), config.DemoInterval)
		demo.Start()
		return demo, "demo", nil
	}

	port, err := transport.OpenSerial(settings.Port, settings.Baud)
	if err != nil {
		return nil, "", err
	}
	return port, fmt.Sprintf("%s @ %d", settings.Port, settings.Baud), nil
}

func listPorts(cmd *cobra.Command, args []string) error {
	ports, err := transport.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Println(p)
	}
	return nil
}
