package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/celestiaorg/zkmsg/x/zkmsg/client/cli"
	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

const (
	FlagHome     = "home"
	FlagLogLevel = "log-level"
	FlagForce    = "force"
)

// DefaultHome is the default zkmsg home directory.
var DefaultHome = func() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".zkmsg"
	}
	return filepath.Join(userHome, ".zkmsg")
}()

// rootState carries the config loaded before any subcommand runs.
type rootState struct {
	viper  *viper.Viper
	cfg    Config
	logger log.Logger
}

func (s *rootState) params() (types.Params, error) {
	return s.cfg.Zkmsg.Params()
}

// NewRootCmd creates the zkmsg operator command.
func NewRootCmd() *cobra.Command {
	state := &rootState{viper: viper.New(), logger: log.NewNopLogger()}

	rootCmd := &cobra.Command{
		Use:           "zkmsg",
		Short:         "Operator tooling for the zkmsg cross-chain message verification module",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			homeDir, err := cmd.Flags().GetString(FlagHome)
			if err != nil {
				return err
			}

			if err := state.viper.BindPFlag("log_level", cmd.Flags().Lookup(FlagLogLevel)); err != nil {
				return err
			}

			cfg, err := LoadConfig(state.viper, homeDir)
			if err != nil {
				return err
			}

			logger, err := NewLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			state.cfg = cfg
			state.logger = logger.With("module", "zkmsg")
			state.logger.Debug("loaded config", "path", ConfigPath(homeDir))
			return nil
		},
	}

	rootCmd.PersistentFlags().String(FlagHome, DefaultHome, "The zkmsg home directory")
	rootCmd.PersistentFlags().String(FlagLogLevel, DefaultConfig().LogLevel, "Log level (trace|debug|info|warn|error)")

	rootCmd.AddCommand(
		configCmd(state),
		cli.NewProgramCmd(),
		cli.NewKeyCmd(),
		cli.NewProofCmd(),
		cli.NewMessageCmd(),
		cli.NewGenesisCmd(state.params),
	)

	return rootCmd
}

func configCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the zkmsg.toml config file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default zkmsg.toml to the home directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			homeDir, err := cmd.Flags().GetString(FlagHome)
			if err != nil {
				return err
			}

			force, err := cmd.Flags().GetBool(FlagForce)
			if err != nil {
				return err
			}

			path := ConfigPath(homeDir)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists, use --%s to overwrite", path, FlagForce)
			}

			if err := WriteConfig(homeDir, DefaultConfig()); err != nil {
				return err
			}

			state.logger.Info("wrote config", "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	initCmd.Flags().Bool(FlagForce, false, "Overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config after defaults and environment overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := state.params(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			bz, err := marshalConfig(state.cfg)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), string(bz))
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
