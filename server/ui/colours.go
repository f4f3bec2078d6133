package ui

import "fmt"

const (
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	Gray    = "\033[90m" // Bright black, often appears as gray

	ResetColor = "\033[0m" // Reset to default color
)

var MethodColors = map[string]string{
	"GET":    Green,
	"POST":   Blue,
	"PUT":    Cyan,
	"DELETE": Yellow,
	"PATCH":  Magenta,
}

// ColouredMethod pads an HTTP method and wraps it in its ANSI colour, gray when unknown
func ColouredMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := MethodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

// ColouredStatus colours a response status: green 2xx, cyan 3xx, yellow 4xx, red 5xx
func ColouredStatus(status int) string {
	color := Green
	switch {
	case status >= 500:
		color = Red
	case status >= 400:
		color = Yellow
	case status >= 300:
		color = Cyan
	}
	return fmt.Sprintf("%s%d%s", color, status, ResetColor)
}
