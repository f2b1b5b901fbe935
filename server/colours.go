package server

import (
	"fmt"
	"strconv"
)

// ANSI escapes for the DEV console
const (
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	Gray    = "\033[90m"

	ResetColor = "\033[0m"
)

var methodColors = map[string]string{
	"GET":     Green,
	"POST":    Blue,
	"PUT":     Cyan,
	"PATCH":   Magenta,
	"DELETE":  Yellow,
	"OPTIONS": Gray,
}

func colouredMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

// colouredStatus marks client errors yellow and server errors red
func colouredStatus(status int) string {
	code := strconv.Itoa(status)
	switch {
	case status >= 500:
		return Red + code + ResetColor
	case status >= 400:
		return Yellow + code + ResetColor
	}
	return Green + code + ResetColor
}
