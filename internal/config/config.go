// Package config loads arka configuration from a config file and
// environment variables via viper.
//
// Lookup order: explicit --config path, then $HOME/.arka.yaml, then
// ARKA_* environment variables, then defaults. Flags still win over
// everything at the command layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/arkamesh/arka/internal/match"
)

// Keys understood by the config file and environment.
const (
	KeyDBPath            = "db.path"
	KeyColdChainBonus    = "match.cold_chain_bonus"
	KeyTrustOverlapBonus = "match.trust_overlap_bonus"
	KeyLocalityBonus     = "match.locality_bonus"
)

// Init reads the config file and environment into viper. cfgFile may
// be empty, in which case $HOME/.arka.yaml is used when present. A
// missing config file is not an error - defaults apply.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".arka")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("arka")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		// An explicitly named file that doesn't exist is also fine;
		// a malformed file is not.
		if cfgFile != "" && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	return nil
}

// setDefaults registers defaults for every known key.
func setDefaults() {
	viper.SetDefault(KeyDBPath, filepath.Join(".", "arka.db"))
	viper.SetDefault(KeyColdChainBonus, false)
	viper.SetDefault(KeyTrustOverlapBonus, false)
	viper.SetDefault(KeyLocalityBonus, false)
}

// DBPath returns the configured database path.
func DBPath() string {
	return viper.GetString(KeyDBPath)
}

// MatchConfig maps the configured bonus toggles onto the engine config.
func MatchConfig() match.Config {
	return match.Config{
		ColdChain:    viper.GetBool(KeyColdChainBonus),
		TrustOverlap: viper.GetBool(KeyTrustOverlapBonus),
		Locality:     viper.GetBool(KeyLocalityBonus),
	}
}
