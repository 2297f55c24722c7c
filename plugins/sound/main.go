// Package main provides a sound effect plugin.
// It plays short audio cues for rep and completion events using the system
// audio player (afplay on macOS, paplay elsewhere).
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action      string          `json:"action"`
	Event       string          `json:"event"`
	Exercise    string          `json:"exercise"`
	Reps        int             `json:"reps"`
	HoldSeconds float64         `json:"hold_seconds"`
	Feedback    string          `json:"feedback,omitempty"`
	Config      json.RawMessage `json:"config"`
	Params      json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SoundConfig holds the optional per-binding configuration.
type SoundConfig struct {
	File string `json:"file"`
}

// Default cue files per action on macOS.
var darwinSounds = map[string]string{
	"tick":  "/System/Library/Sounds/Tink.aiff",
	"alert": "/System/Library/Sounds/Basso.aiff",
	"chime": "/System/Library/Sounds/Glass.aiff",
}

func main() {
	// Read request from stdin
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	var cfg SoundConfig
	if len(req.Config) > 0 {
		json.Unmarshal(req.Config, &cfg)
	}

	file := cfg.File
	if file == "" {
		file = defaultSound(req.Action)
	}
	if file == "" {
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	if err := play(file); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	// Write success response
	writeSuccessResponse()
}

// defaultSound returns the built-in cue file for an action.
func defaultSound(action string) string {
	if runtime.GOOS == "darwin" {
		return darwinSounds[action]
	}
	switch action {
	case "tick", "alert", "chime":
		return "/usr/share/sounds/freedesktop/stereo/complete.oga"
	}
	return ""
}

// play runs the platform audio player on the given file.
func play(file string) error {
	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" {
		cmd = exec.Command("afplay", file)
	} else {
		cmd = exec.Command("paplay", file)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}
