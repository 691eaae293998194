// Package config provides configuration helpers for go-elmo commands.
package config

import (
	"fmt"
	"os"
)

// Default robot configuration.
const (
	DefaultCommandPort = 4000
	DefaultAPIPort     = "8001"
	DefaultStreamPort  = "8080"
)

// ElmoIP returns the robot IP from ELMO_IP env var.
// Falls back to the provided default if not set.
func ElmoIP(defaultIP string) string {
	if ip := os.Getenv("ELMO_IP"); ip != "" {
		return ip
	}
	return defaultIP
}

// ElmoIPRequired returns the robot IP from ELMO_IP env var.
// Exits if not set.
func ElmoIPRequired() string {
	ip := os.Getenv("ELMO_IP")
	if ip == "" {
		fmt.Fprintln(os.Stderr, "Error: ELMO_IP environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: ELMO_IP=192.168.0.102 go run ./cmd/...")
		os.Exit(1)
	}
	return ip
}

// CommandURL returns the robot's privileged HTTP command endpoint.
func CommandURL(elmoIP string) string {
	return fmt.Sprintf("http://%s:%s/command", elmoIP, DefaultAPIPort)
}

// StreamURL returns the robot's MJPEG camera stream endpoint.
func StreamURL(elmoIP string) string {
	return fmt.Sprintf("http://%s:%s/stream.mjpg", elmoIP, DefaultStreamPort)
}
