//go:build !windows

package main

import (
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// highNice is the niceness requested with --high-priority. Values below 0
// need CAP_SYS_NICE or root.
const highNice = -10

func setHighPriority(log zerolog.Logger) error {
	if err := unix.Setpriority(unix.PRIO_PROCESS, 0, highNice); err != nil {
		return err
	}
	log.Debug().Int("nice", highNice).Msg("process priority raised")
	return nil
}
