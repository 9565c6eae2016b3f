package config

import (
	"os"
	"path/filepath"
)

// defaultConfigFiles are searched, in order, in each default location
var defaultConfigFiles = []string{"config.yaml", "config.yml", "config.json", "config.toml"}

// GetConfigPath determines the configuration file path.
// Priority:
// 1. explicit path (from the --config flag), returned even if missing so the caller can fail loudly
// 2. RENOVATE_CONFIG_PATH environment variable, same rule
// 3. config.yaml, config.yml, config.json, config.toml in the current working directory
// 4. the same names in the executable's directory
// An empty string means no config file was found.
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" {
		return configFilePathFlag
	}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		return envPath
	}

	locations := []string{}
	cwd, errCwd := os.Getwd()
	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if exePath, errExe := os.Executable(); errExe == nil {
		exeDir := filepath.Dir(exePath)
		if errCwd != nil || exeDir != cwd {
			locations = append(locations, exeDir)
		}
	}

	for _, loc := range locations {
		for _, file := range defaultConfigFiles {
			path := filepath.Join(loc, file)
			if fileExists(path) {
				return path
			}
		}
	}
	return ""
}

// fileExists reports whether filename exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
