package services

import "time"

const (
	defaultWait  = 2 * time.Second
	pollInterval = 5 * time.Millisecond
)
