package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	Logger   = zap.NewNop()
	logLevel string
)

var RootCmd = &cobra.Command{
	Use:   "struct-check",
	Short: "A database structure checker",
	Long: `
  ___ _____ ___ _   _  ___ _____    ___ _  _ ___ ___ _  __
 / __|_   _| _ \ | | |/ __|_   _|  / __| || | __/ __| |/ /
 \__ \ | | |   / |_| | (__  | |   | (__| __ | _| (__| ' < 
 |___/ |_| |_|_\\___/ \___| |_|    \___|_||_|___\___|_|\_\
                                                          
STRUCT CHECK 🔍 - Table & Index Structure Comparator
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := viper.GetString("settings.log_level")
		if logLevel != "" {
			level = logLevel
		}
		l, err := newLogger(level)
		if err != nil {
			return err
		}
		Logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = Logger.Sync()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./struct-check.yaml)")
	flags.StringVar(&overrides[roleSrc].DSN, "src-dsn", "", "Source DSN (overrides config)")
	flags.StringVar(&overrides[roleSrc].Driver, "src-driver", "", "Source driver (overrides config)")
	flags.StringVar(&overrides[roleDst].DSN, "dst-dsn", "", "Destination DSN (overrides config)")
	flags.StringVar(&overrides[roleDst].Driver, "dst-driver", "", "Destination driver (overrides config)")
	flags.StringSliceVarP(&schemaFlag, "schemas", "s", []string{}, "Schemas to check (comma-separated, overrides config)")
	flags.String("log-dir", "", "Directory for miss.log, diff.log and extra.log")
	flags.Int("parallel", 0, "Number of schemas checked at once")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	bindSettings()
}

// bindSettings binds flags and defaults into viper (Flag > Config > Default).
func bindSettings() {
	flags := RootCmd.PersistentFlags()
	viper.BindPFlag("settings.check_log_dir", flags.Lookup("log-dir"))
	viper.BindPFlag("settings.parallel", flags.Lookup("parallel"))

	viper.SetDefault("settings.check_log_dir", "./check_log")
	viper.SetDefault("settings.parallel", 1)
	viper.SetDefault("settings.log_level", "info")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("struct-check")
		viper.SetConfigType("yaml")
	}

	// A local .env may carry STRUCT_CHECK_* credentials; it never overrides the real environment.
	_ = godotenv.Load()
	viper.SetEnvPrefix("struct_check")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	return cfg.Build()
}
