package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewConsole(t *testing.T) {
	if NewConsole() == nil {
		t.Fatal("NewConsole() returned nil")
	}
}

func TestConsole_colorize(t *testing.T) {
	console := &Console{useColors: true}

	tests := []struct {
		style    Style
		message  string
		expected bool // true if the result should contain color codes
	}{
		{StyleNormal, "test message", false},
		{StyleError, "error message", true},
		{StyleWarning, "warning message", true},
		{StyleSuccess, "success message", true},
		{StyleInfo, "info message", true},
	}

	for _, test := range tests {
		result := console.colorize(test.style, test.message)

		if test.expected {
			if !strings.Contains(result, test.message) {
				t.Errorf("colorize(%v, %q) should contain original message", test.style, test.message)
			}
			if !strings.Contains(result, colorReset) {
				t.Errorf("colorize(%v, %q) should contain reset code", test.style, test.message)
			}
		} else {
			if result != test.message {
				t.Errorf("colorize(%v, %q) = %q, want %q", test.style, test.message, result, test.message)
			}
		}
	}
}

func TestConsole_colorize_NoColors(t *testing.T) {
	console := &Console{useColors: false}

	result := console.colorize(StyleError, "test message")
	if result != "test message" {
		t.Errorf("colorize with useColors=false should return original message, got %q", result)
	}
}

func TestConsole_PrintStatus(t *testing.T) {
	var out bytes.Buffer
	console := &Console{out: &out, errOut: &out}

	console.PrintStatus("Downloading image %s", "kdeneon/plasma:user")

	if got := out.String(); got != "Downloading image kdeneon/plasma:user\n" {
		t.Errorf("PrintStatus wrote %q", got)
	}
}

func TestConsole_PrintError_GoesToErrOut(t *testing.T) {
	var out, errOut bytes.Buffer
	console := &Console{out: &out, errOut: &errOut}

	console.PrintError("daemon unreachable")

	if out.Len() != 0 {
		t.Errorf("PrintError should not write to stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "Error: daemon unreachable") {
		t.Errorf("PrintError wrote %q", errOut.String())
	}
}

func TestConsole_FormatErrorMessage(t *testing.T) {
	console := NewConsole()

	tests := []struct {
		name       string
		context    string
		cause      string
		suggestion string
		want       string
	}{
		{
			name:       "all parts",
			context:    "Cannot reach the Docker daemon",
			cause:      "connection refused",
			suggestion: "Start the Docker service",
			want:       "Cannot reach the Docker daemon\nCause: connection refused\nSuggestion: Start the Docker service",
		},
		{
			name:    "context only",
			context: "Image missing",
			want:    "Image missing",
		},
		{
			name:       "no cause",
			context:    "Image missing",
			suggestion: "Run with --pull",
			want:       "Image missing\nSuggestion: Run with --pull",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := console.FormatErrorMessage(test.context, test.cause, test.suggestion)
			if got != test.want {
				t.Errorf("FormatErrorMessage() = %q, want %q", got, test.want)
			}
		})
	}
}
