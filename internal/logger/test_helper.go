package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

func NewTest() *Logger {
	zerolog.SetGlobalLevel(zerolog.Disabled)

	testLogger := zerolog.New(io.Discard).With().Timestamp().Logger()

	l := &Logger{
		logger:   testLogger,
		language: "en-US",
		messages: make(map[string]string),
	}

	l.messages = map[string]string{
		"image_list_loaded":             "Image list loaded",
		"image_list_invalid":            "Image list contains errors",
		"validation_started":            "Validating configured destinations",
		"validation_passed":             "All destinations passed validation",
		"validation_failed":             "Destination validation failed",
		"validation_destination_ok":     "Destination validated",
		"validation_destination_failed": "Destination failed validation",
		"registry_added":                "Registry added",
		"registry_add_failed":           "Failed to add registry",
		"registry_login_started":        "Authenticating to registry",
		"registry_login_ok":             "Authenticated to registry",
		"registry_login_failed":         "Registry authentication failed",
		"mirror_started":                "Mirror run started",
		"mirror_completed":              "Mirror run completed",
		"mirror_had_failures":           "Mirror run completed with failures",
		"mirror_failure_detail":         "Mirror failure",
		"push_attempt_failed":           "Push attempt failed",
		"retry_backoff":                 "Waiting before next attempt",
		"dry_run_would_mirror":          "Dry run: image would be mirrored",
	}

	return l
}

func NewTestWithOutput() *Logger {
	testLogger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	l := &Logger{
		logger:   testLogger,
		language: "en-US",
		messages: make(map[string]string),
	}

	l.messages = map[string]string{
		"image_list_loaded":             "Image list loaded",
		"image_list_invalid":            "Image list contains errors",
		"validation_started":            "Validating configured destinations",
		"validation_passed":             "All destinations passed validation",
		"validation_failed":             "Destination validation failed",
		"validation_destination_ok":     "Destination validated",
		"validation_destination_failed": "Destination failed validation",
		"registry_added":                "Registry added",
		"registry_add_failed":           "Failed to add registry",
		"registry_login_started":        "Authenticating to registry",
		"registry_login_ok":             "Authenticated to registry",
		"registry_login_failed":         "Registry authentication failed",
		"mirror_started":                "Mirror run started",
		"mirror_completed":              "Mirror run completed",
		"mirror_had_failures":           "Mirror run completed with failures",
		"mirror_failure_detail":         "Mirror failure",
		"push_attempt_failed":           "Push attempt failed",
		"retry_backoff":                 "Waiting before next attempt",
		"dry_run_would_mirror":          "Dry run: image would be mirrored",
	}

	return l
}
