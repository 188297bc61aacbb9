package logger

import (
	"fmt"
	"time"
)

// ANSI color codes for console output.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

func stamp() string {
	return time.Now().Format("15:04:05")
}

func line(color, symbol, tag, msg string) {
	fmt.Printf("%s%s%s %s[%s]%s %s%s%s\n", dim, stamp(), reset, color, tag, reset, color, symbol+" "+msg, reset)
}

// Info prints a neutral status line with the given tag.
func Info(tag, msg string) {
	line(cyan, "·", tag, msg)
}

// Success prints a green checkmark line.
func Success(tag, msg string) {
	line(green, "✓", tag, msg)
}

// Warn prints a yellow warning line.
func Warn(tag, msg string) {
	line(yellow, "!", tag, msg)
}

// Error prints a red error line.
func Error(tag, msg string) {
	line(red, "✗", tag, msg)
}

// Section prints a bold section divider.
func Section(name string) {
	fmt.Printf("\n%s── %s %s\n", bold, name, reset)
}

// Stats prints an indented key/value pair under the current section.
func Stats(key string, value interface{}) {
	fmt.Printf("   %s%-18s%s %v\n", dim, key, reset, value)
}

// Server prints the listen address once the HTTP server is up.
func Server(addr string) {
	fmt.Printf("\n%s%s➜  GE Flipper running at http://%s%s\n\n", bold, green, addr, reset)
}

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Printf("%s%s", bold, cyan)
	fmt.Println(`   ____ _____   _____ _ _                       `)
	fmt.Println(`  / ___| ____| |  ___| (_)_ __  _ __   ___ _ __ `)
	fmt.Println(` | |  _|  _|   | |_  | | | '_ \| '_ \ / _ \ '__|`)
	fmt.Println(` | |_| | |___  |  _| | | | |_) | |_) |  __/ |   `)
	fmt.Println(`  \____|_____| |_|   |_|_| .__/| .__/ \___|_|   `)
	fmt.Println(`                         |_|   |_|              `)
	fmt.Printf("%s", reset)
	fmt.Printf("  %sOSRS Grand Exchange flip tracker %s(%s)%s\n\n", dim, bold, version, reset)
}
