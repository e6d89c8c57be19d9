package util

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const Name = "disclosures"
const ConfigFileName = "config.yaml"

//go:embed config_default.yaml
var embeddedConfig []byte

type AppConfig struct {
	Conf struct {
		Host          string
		SshPort       int      `yaml:"sshPort"`
		HttpPort      int      `yaml:"httpPort"`
		DbDriver      string   `yaml:"dbDriver"`
		DbPath        string   `yaml:"dbPath"`
		WithJournald  bool     `yaml:"withJournald"`
		SshOnly       bool     `yaml:"sshOnly"`
		DefaultPageId int      `yaml:"defaultPageId"`
		RateLimit     float64  `yaml:"rateLimit"`
		RateBurst     int      `yaml:"rateBurst"`
		AdminKeys     []string `yaml:"adminKeys"`
	}
}

func ReadConf() (*AppConfig, error) {

	c := &AppConfig{}

	// Try to resolve config file path (local first, then user dir)
	configPath := ResolveFilePath(ConfigFileName)

	buf, err := os.ReadFile(configPath)
	if err != nil {
		log.Printf("Config file not found at %s, using embedded defaults", configPath)
		buf = embeddedConfig

		configDir, dirErr := GetConfigDir()
		if dirErr == nil {
			userConfigPath := configDir + "/" + ConfigFileName
			writeErr := os.WriteFile(userConfigPath, embeddedConfig, 0644)
			if writeErr != nil {
				log.Printf("Warning: could not write default config to %s: %v", userConfigPath, writeErr)
			} else {
				log.Printf("Created default config file at %s", userConfigPath)
			}
		}
	}

	if err := ParseConf(buf, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseConf decodes YAML into c, then applies DISCLOSURES_* overrides and clamps.
func ParseConf(buf []byte, c *AppConfig) error {
	if err := yaml.Unmarshal(buf, c); err != nil {
		return fmt.Errorf("in config file: %w", err)
	}

	envHost := os.Getenv("DISCLOSURES_HOST")
	envSshPort := os.Getenv("DISCLOSURES_SSHPORT")
	envHttpPort := os.Getenv("DISCLOSURES_HTTPPORT")
	envDbDriver := os.Getenv("DISCLOSURES_DB_DRIVER")
	envDbPath := os.Getenv("DISCLOSURES_DB_PATH")
	envWithJournald := os.Getenv("DISCLOSURES_WITH_JOURNALD")
	envSshOnly := os.Getenv("DISCLOSURES_SSH_ONLY")
	envAdminKeys := os.Getenv("DISCLOSURES_ADMIN_KEYS")
	envDefaultPage := os.Getenv("DISCLOSURES_DEFAULT_PAGE")
	envRateLimit := os.Getenv("DISCLOSURES_RATE_LIMIT")

	if envHost != "" {
		c.Conf.Host = envHost
	}

	if envSshPort != "" {
		v, err := strconv.Atoi(envSshPort)
		if err != nil {
			log.Printf("Error parsing DISCLOSURES_SSHPORT: %v", err)
		} else {
			c.Conf.SshPort = v
		}
	}

	if envHttpPort != "" {
		v, err := strconv.Atoi(envHttpPort)
		if err != nil {
			log.Printf("Error parsing DISCLOSURES_HTTPPORT: %v", err)
		} else {
			c.Conf.HttpPort = v
		}
	}

	if envDbDriver != "" {
		c.Conf.DbDriver = envDbDriver
	}

	if envDbPath != "" {
		c.Conf.DbPath = envDbPath
	}

	if envWithJournald == "true" {
		c.Conf.WithJournald = true
	}

	if envSshOnly == "true" {
		c.Conf.SshOnly = true
	}

	if envAdminKeys != "" {
		c.Conf.AdminKeys = nil
		for _, k := range strings.Split(envAdminKeys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.Conf.AdminKeys = append(c.Conf.AdminKeys, k)
			}
		}
	}

	if envDefaultPage != "" {
		v, err := strconv.Atoi(envDefaultPage)
		if err != nil {
			log.Printf("Error parsing DISCLOSURES_DEFAULT_PAGE: %v", err)
		} else {
			c.Conf.DefaultPageId = v
		}
	}

	if envRateLimit != "" {
		v, err := strconv.ParseFloat(envRateLimit, 64)
		if err != nil {
			log.Printf("Error parsing DISCLOSURES_RATE_LIMIT: %v", err)
		} else {
			c.Conf.RateLimit = v
		}
	}

	switch c.Conf.DbDriver {
	case "sqlite", "sqlite3":
	case "":
		c.Conf.DbDriver = "sqlite"
	default:
		log.Printf("dbDriver %q is not supported, falling back to sqlite", c.Conf.DbDriver)
		c.Conf.DbDriver = "sqlite"
	}

	if c.Conf.DbPath == "" {
		c.Conf.DbPath = "database.db"
	}

	if c.Conf.RateLimit <= 0 {
		c.Conf.RateLimit = 10
	}
	if c.Conf.RateBurst < 1 {
		log.Printf("rateBurst value %d is less than minimum of 1, setting to default 20", c.Conf.RateBurst)
		c.Conf.RateBurst = 20
	}

	return nil
}

// IsAdminKey reports whether the hashed public key is listed in adminKeys.
func (c *AppConfig) IsAdminKey(hash string) bool {
	for _, k := range c.Conf.AdminKeys {
		if strings.EqualFold(strings.TrimSpace(k), hash) {
			return true
		}
	}
	return false
}
