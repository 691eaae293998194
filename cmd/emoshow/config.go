package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gaips/go-elmo/internal/config"
)

type Config struct {
	elmoIP        string
	elmoPort      int
	debug         bool
	connect       bool
	listen        string
	visionURL     string
	visionTimeout time.Duration
	faceModel     string
	resultsDB     string
	frameDir      string
	logLevel      string
	logFile       string
}

func (c *Config) validate() error {
	if !c.debug && c.elmoIP == "" {
		return errors.New("--elmo-ip is required unless --debug is set")
	}
	if c.elmoPort < 1 || c.elmoPort > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.elmoPort)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("EMOSHOW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "emoshow",
		Short:         "Two-player mimic-the-emotion game for the Elmo robot.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.elmoIP, "elmo-ip", config.ElmoIP(""), "robot address (env: EMOSHOW_ELMO_IP or ELMO_IP)")
	fs.IntVar(&cfg.elmoPort, "elmo-port", config.DefaultCommandPort, "robot UDP command port (env: EMOSHOW_ELMO_PORT)")
	fs.BoolVar(&cfg.debug, "debug", false, "no robot I/O, commands logged only (env: EMOSHOW_DEBUG)")
	fs.BoolVar(&cfg.connect, "connect", false, "command socket only: no side channel, synthetic frames (env: EMOSHOW_CONNECT)")
	fs.StringVar(&cfg.listen, "listen", ":8100", "control panel listen address (env: EMOSHOW_LISTEN)")
	fs.StringVar(&cfg.visionURL, "vision-url", "", "emotion analysis service URL; empty uses a stub (env: EMOSHOW_VISION_URL)")
	fs.DurationVar(&cfg.visionTimeout, "vision-timeout", 0, "analysis request deadline, 0 waits forever (env: EMOSHOW_VISION_TIMEOUT)")
	fs.StringVar(&cfg.faceModel, "face-model", "models/haarcascade_frontalface_default.xml", "face cascade path (env: EMOSHOW_FACE_MODEL)")
	fs.StringVar(&cfg.resultsDB, "results-db", "", "sqlite results database path; empty disables recording (env: EMOSHOW_RESULTS_DB)")
	fs.StringVar(&cfg.frameDir, "frame-dir", "", "directory for captured frame audit; empty disables (env: EMOSHOW_FRAME_DIR)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error (env: EMOSHOW_LOG_LEVEL)")
	fs.StringVar(&cfg.logFile, "log-file", "", "mirror logs to this file (env: EMOSHOW_LOG_FILE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	return cmd
}
