// Package sysinfo builds the text for the read-only system-state
// resources.
package sysinfo

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Info renders the system://info resource text.
func Info() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "System: %s\n", runtime.GOOS)
	fmt.Fprintf(&b, "Node: %s\n", hostname)
	fmt.Fprintf(&b, "Release: %s\n", kernelValue("osrelease"))
	fmt.Fprintf(&b, "Version: %s\n", kernelValue("version"))
	fmt.Fprintf(&b, "Machine: %s\n", runtime.GOARCH)
	fmt.Fprintf(&b, "Go Version: %s", runtime.Version())
	return b.String()
}

// CurrentDirectory renders the pwd://current resource text.
func CurrentDirectory() string {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Sprintf("Error getting current directory: %s", err)
	}
	return fmt.Sprintf("Current working directory: %s", wd)
}

func kernelValue(name string) string {
	raw, err := os.ReadFile("/proc/sys/kernel/" + name)
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(raw))
}
