// Package config manages user-level settings stored at ~/.expo-mods/config.yaml.
// It provides functions to load, read, and write keys such as the default
// platforms for prebuild and the log level.
package config
