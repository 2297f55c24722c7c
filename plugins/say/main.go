// Package main provides a speech plugin.
// It speaks rep counts, coaching feedback and completion summaries using the
// system text-to-speech command (say on macOS, espeak elsewhere).
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

// SpeechConfig holds the optional per-binding configuration.
type SpeechConfig struct {
	Voice string `json:"voice"`
}

func main() {
	// Read request from stdin
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	var cfg SpeechConfig
	if len(req.Config) > 0 {
		json.Unmarshal(req.Config, &cfg)
	}

	phrase, err := phraseFor(&req)
	if err != nil {
		writeErrorResponse(err.Error())
		return
	}

	if err := speak(phrase, cfg.Voice); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	// Write success response
	writeSuccessResponse()
}

// phraseFor builds the spoken phrase for the request.
func phraseFor(req *Request) (string, error) {
	switch req.Action {
	case "announce":
		return fmt.Sprintf("%d", req.Reps), nil
	case "coach":
		if req.Feedback == "" {
			return "", fmt.Errorf("feedback is required for coach")
		}
		return req.Feedback, nil
	case "summary":
		if req.HoldSeconds > 0 {
			return fmt.Sprintf("Done. You held for %.0f seconds.", req.HoldSeconds), nil
		}
		return fmt.Sprintf("Done. %d reps of %s.", req.Reps, req.Exercise), nil
	default:
		return "", fmt.Errorf("unknown action: %s", req.Action)
	}
}

// speak runs the platform text-to-speech command.
func speak(phrase, voice string) error {
	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" {
		if voice != "" {
			cmd = exec.Command("say", "-v", voice, phrase)
		} else {
			cmd = exec.Command("say", phrase)
		}
	} else {
		cmd = exec.Command("espeak", phrase)
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
