package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/celestiaorg/zkmsg/x/zkmsg/types"
)

const (
	// EnvPrefix is the prefix of environment variables overriding config values,
	// e.g. ZKMSG_ZKMSG_MAX_PAYLOAD_SIZE.
	EnvPrefix = "ZKMSG"

	configDir      = "config"
	configFileName = "zkmsg.toml"
)

// Config is the operator configuration read from zkmsg.toml.
type Config struct {
	LogLevel string       `mapstructure:"log_level" toml:"log_level"`
	Zkmsg    ModuleConfig `mapstructure:"zkmsg" toml:"zkmsg"`
}

// ModuleConfig mirrors types.Params in a form suited to a config file.
type ModuleConfig struct {
	MaxPayloadSize      uint32 `mapstructure:"max_payload_size" toml:"max_payload_size"`
	MessageDeposit      string `mapstructure:"message_deposit" toml:"message_deposit"`
	MaxKeySize          uint32 `mapstructure:"max_key_size" toml:"max_key_size"`
	MaxProgramSize      uint32 `mapstructure:"max_program_size" toml:"max_program_size"`
	MaxProgramAge       uint64 `mapstructure:"max_program_age" toml:"max_program_age"`
	FailedDepositPolicy string `mapstructure:"failed_deposit_policy" toml:"failed_deposit_policy"`
	PruneStalePrograms  bool   `mapstructure:"prune_stale_programs" toml:"prune_stale_programs"`
}

// DefaultConfig returns a config matching types.DefaultParams.
func DefaultConfig() Config {
	params := types.DefaultParams()
	return Config{
		LogLevel: zerolog.InfoLevel.String(),
		Zkmsg: ModuleConfig{
			MaxPayloadSize:      params.MaxPayloadSize,
			MessageDeposit:      params.MessageDeposit.String(),
			MaxKeySize:          params.MaxKeySize,
			MaxProgramSize:      params.MaxProgramSize,
			MaxProgramAge:       params.MaxProgramAge,
			FailedDepositPolicy: params.FailedDepositPolicy.String(),
			PruneStalePrograms:  params.PruneStalePrograms,
		},
	}
}

// Params converts the module section into validated params.
func (c ModuleConfig) Params() (types.Params, error) {
	deposit, err := sdk.ParseCoinNormalized(c.MessageDeposit)
	if err != nil {
		return types.Params{}, fmt.Errorf("message_deposit: %w", err)
	}

	policy, err := types.ParseFailedDepositPolicy(c.FailedDepositPolicy)
	if err != nil {
		return types.Params{}, fmt.Errorf("failed_deposit_policy: %w", err)
	}

	params := types.NewParams(
		c.MaxPayloadSize,
		deposit,
		c.MaxKeySize,
		c.MaxProgramSize,
		c.MaxProgramAge,
		policy,
		c.PruneStalePrograms,
	)

	if err := params.Validate(); err != nil {
		return types.Params{}, err
	}

	return params, nil
}

// ConfigPath returns the location of zkmsg.toml under homeDir.
func ConfigPath(homeDir string) string {
	return filepath.Join(homeDir, configDir, configFileName)
}

// LoadConfig reads zkmsg.toml from homeDir, applying defaults for missing keys and
// environment overrides. A missing file yields the defaults.
func LoadConfig(v *viper.Viper, homeDir string) (Config, error) {
	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("zkmsg.max_payload_size", defaults.Zkmsg.MaxPayloadSize)
	v.SetDefault("zkmsg.message_deposit", defaults.Zkmsg.MessageDeposit)
	v.SetDefault("zkmsg.max_key_size", defaults.Zkmsg.MaxKeySize)
	v.SetDefault("zkmsg.max_program_size", defaults.Zkmsg.MaxProgramSize)
	v.SetDefault("zkmsg.max_program_age", defaults.Zkmsg.MaxProgramAge)
	v.SetDefault("zkmsg.failed_deposit_policy", defaults.Zkmsg.FailedDepositPolicy)
	v.SetDefault("zkmsg.prune_stale_programs", defaults.Zkmsg.PruneStalePrograms)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(ConfigPath(homeDir))
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", ConfigPath(homeDir), err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// WriteConfig writes cfg to zkmsg.toml under homeDir, creating the config directory.
func WriteConfig(homeDir string, cfg Config) error {
	bz, err := marshalConfig(cfg)
	if err != nil {
		return err
	}

	path := ConfigPath(homeDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, bz, 0o644)
}

func marshalConfig(cfg Config) ([]byte, error) {
	bz, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return bz, nil
}

// NewLogger builds the command logger at the configured level.
func NewLogger(cfg Config, dst io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}

	return log.NewLogger(dst, log.LevelOption(level), log.ColorOption(false)), nil
}
