package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/driftfm/drift/internal/config"
	"github.com/driftfm/drift/internal/fetch"
	"github.com/driftfm/drift/internal/logging"
	"github.com/driftfm/drift/internal/mpris"
	"github.com/driftfm/drift/internal/player"
	"github.com/driftfm/drift/internal/session"
	"github.com/driftfm/drift/internal/state"
	"github.com/driftfm/drift/internal/tracks"
	"github.com/driftfm/drift/internal/ui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var flags struct {
		trackList  string
		bufferSize int
		paused     bool
		debug      bool
		minimalist bool
		borderless bool
	}

	cmd := &cobra.Command{
		Use:          "drift",
		Short:        "An endless lofi radio for your terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// Flags override file config.
			if cmd.Flags().Changed("track-list") {
				cfg.TrackList = flags.trackList
			}
			if cmd.Flags().Changed("buffer-size") {
				cfg.BufferSize = flags.bufferSize
			}
			if flags.paused {
				cfg.Paused = true
			}
			if flags.debug {
				cfg.Debug = true
			}
			if flags.minimalist {
				cfg.UI.Minimalist = true
			}
			if flags.borderless {
				cfg.UI.Borderless = true
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.trackList, "track-list", "t", "", "path to a custom track list")
	cmd.Flags().IntVarP(&flags.bufferSize, "buffer-size", "b", 5, "number of tracks to download ahead")
	cmd.Flags().BoolVarP(&flags.paused, "paused", "p", false, "start playback paused")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	cmd.Flags().BoolVarP(&flags.minimalist, "minimalist", "m", false, "hide the control hints")
	cmd.Flags().BoolVar(&flags.borderless, "borderless", false, "drop the window border")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logFile, err := logging.Setup(cfg.Debug)
	if err == nil {
		defer logFile.Close()
	}
	logrus.WithField("buffer_size", cfg.BufferSize).Info("starting drift")

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer stateMgr.Close()

	list, err := tracks.LoadList(cfg.TrackList)
	if err != nil {
		return err
	}
	source := tracks.NewRandomSource(list)

	// No audio device is fatal before anything else starts.
	engine, err := player.New(cfg.Paused)
	if err != nil {
		return err
	}
	defer engine.Close()

	if volume, err := stateMgr.GetVolume(); err == nil {
		engine.SetVolume(volume)
	}

	queue := fetch.NewQueue(cfg.BufferSize)
	pool := fetch.NewPool(source, queue, fetch.Options{
		Timeout: cfg.FetchTimeout(),
		Workers: cfg.FetchWorkers,
	})

	sess := session.New(engine, queue, stateMgr, stateMgr, session.Options{})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool.Start(ctx)
	sessionDone := make(chan struct{})
	go func() {
		defer close(sessionDone)
		if err := sess.Run(ctx); err != nil {
			logrus.WithError(err).Error("session stopped")
		}
	}()

	if cfg.Mpris {
		if adapter, err := mpris.New(sess); err == nil {
			defer adapter.Close()
		} else {
			logrus.WithError(err).Warn("mpris unavailable")
		}
	}

	sess.Send(session.Message{Kind: session.MsgInit})

	program := tea.NewProgram(ui.New(sess, cfg.UI))
	if _, err := program.Run(); err != nil {
		cancel()
		return fmt.Errorf("run ui: %w", err)
	}

	// The UI exits after sending Quit; stop background work and wait
	// for the loop to wind down.
	sess.Send(session.Message{Kind: session.MsgQuit})
	cancel()
	<-sessionDone
	pool.Wait()

	logrus.Info("bye")
	return nil
}
