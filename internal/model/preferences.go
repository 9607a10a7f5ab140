// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// ConfidenceLevel names a minimum recognition confidence the user can select.
type ConfidenceLevel string

// Confidence level constants.
const (
	ConfidenceLow    ConfidenceLevel = "LOW"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceHigh   ConfidenceLevel = "HIGH"
)

// Threshold returns the minimum span confidence for the level, in [0, 1].
func (c ConfidenceLevel) Threshold() float64 {
	switch c {
	case ConfidenceLow:
		return 0.3
	case ConfidenceMedium:
		return 0.5
	case ConfidenceHigh:
		return 0.8
	default:
		return 0.3
	}
}

// Valid reports whether the level is one of the known constants.
func (c ConfidenceLevel) Valid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// ParseConfidenceLevel converts a user-supplied string to a ConfidenceLevel.
func ParseConfidenceLevel(s string) (ConfidenceLevel, error) {
	switch ConfidenceLevel(s) {
	case ConfidenceLow:
		return ConfidenceLow, nil
	case ConfidenceMedium:
		return ConfidenceMedium, nil
	case ConfidenceHigh:
		return ConfidenceHigh, nil
	}
	return "", fmt.Errorf("unknown confidence level %q (want LOW, MEDIUM or HIGH)", s)
}

// Preferences is the flat record of user-configurable behavior. A snapshot is
// taken per capture event; mutations go through the preference store, which
// flushes each change before returning.
type Preferences struct {
	Confidence          ConfidenceLevel
	PrimaryLanguage     string
	ScreenshotDir       string
	AppendSeparator     string
	AlwaysDetectEnglish bool
	DetectQRCodes       bool
	Notify              bool
	KeepLinebreaks      bool
	AppendToClipboard   bool
	ClearClipboardFirst bool
	ConfirmBeforeCommit bool
	Paused              bool
	LaunchAtLogin       bool
}

// DefaultPreferences returns the record used when no value has been persisted.
func DefaultPreferences() Preferences {
	return Preferences{
		Confidence:      ConfidenceLow,
		PrimaryLanguage: "eng",
		ScreenshotDir:   "~/Desktop",
		AppendSeparator: "\n",
		Notify:          true,
	}
}
