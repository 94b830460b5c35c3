package cmd

import "time"

type Config struct {
	HTTPPort          string
	DBPath            string
	OrderGateInterval time.Duration
	OrderGateMaxUsers int
}
