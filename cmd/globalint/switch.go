package main

import (
	"fmt"
	"os"
	"strings"
)

// switchMode is the value of the tri-state --color and --ui flags.
type switchMode string

const (
	switchAuto switchMode = "auto"
	switchOn   switchMode = "on"
	switchOff  switchMode = "off"
)

func parseSwitch(flag, value string) (switchMode, error) {
	switch m := switchMode(strings.ToLower(strings.TrimSpace(value))); m {
	case "":
		return switchAuto, nil
	case switchAuto, switchOn, switchOff:
		return m, nil
	}
	return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// resolve decides an auto switch with auto.
func (m switchMode) resolve(auto func() bool) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return auto()
}

// useProgressView: the view draws on stderr, so auto wants it to be a
// terminal and more than one file to follow.
func useProgressView(mode switchMode, files int) bool {
	return mode.resolve(func() bool { return files > 1 && isTerminal(os.Stderr) })
}
