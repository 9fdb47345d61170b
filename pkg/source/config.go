package source

import (
	"log"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the data source settings for a load.
type Config struct {
	// Endpoints are tried in order; the first yielding a non-empty
	// categories+locations pair wins. Entries without a scheme are treated
	// as local file paths.
	Endpoints []string
	// CachePath is the diskv base directory for the snapshot cache.
	CachePath string
}

// LoadConfig resolves configuration from a .fairmap config file and FAIRMAP_*
// environment variables, mirroring the usual viper setup.
func LoadConfig() (*Config, error) {
	viper.SetDefault("endpoints", []string{"./data/locations.json"})
	viper.SetConfigName(".fairmap") // .yaml is implicit
	viper.SetEnvPrefix("FAIRMAP")
	viper.AutomaticEnv()

	if override := os.Getenv("FAIRMAP_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("error reading config file: %v", err)
			return nil, err
		}
	}

	cachePath := viper.GetString("cache")
	if cachePath == "" {
		if home, err := homedir.Dir(); err == nil {
			cachePath = filepath.Join(home, ".fairmap.cache")
		}
	}

	return &Config{
		Endpoints: viper.GetStringSlice("endpoints"),
		CachePath: cachePath,
	}, nil
}
