//go:build windows

package main

import (
	"unsafe"

	"github.com/rs/zerolog"
	"golang.org/x/sys/windows"
)

const processPowerThrottling = 4 // PROCESS_INFORMATION_CLASS

var procSetProcessInformation = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetProcessInformation")

// setHighPriority moves the process to HIGH_PRIORITY_CLASS (never REALTIME,
// which can starve the system) and opts out of Efficiency Mode.
func setHighPriority(log zerolog.Logger) error {
	handle := windows.CurrentProcess()
	if err := windows.SetPriorityClass(handle, windows.HIGH_PRIORITY_CLASS); err != nil {
		if err := windows.SetPriorityClass(handle, windows.ABOVE_NORMAL_PRIORITY_CLASS); err != nil {
			return err
		}
	}
	if err := disablePowerThrottling(handle); err != nil {
		log.Debug().Err(err).Msg("power throttling left enabled")
	}
	return nil
}

// disablePowerThrottling is available on Windows 10 1709+.
func disablePowerThrottling(handle windows.Handle) error {
	state := struct {
		Version     uint32
		ControlMask uint32
		StateMask   uint32
	}{
		Version:     1,
		ControlMask: 0x1, // PROCESS_POWER_THROTTLING_EXECUTION_SPEED
	}
	ret, _, err := procSetProcessInformation.Call(
		uintptr(handle),
		processPowerThrottling,
		uintptr(unsafe.Pointer(&state)),
		unsafe.Sizeof(state),
	)
	if ret == 0 {
		return err
	}
	return nil
}
