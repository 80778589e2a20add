package compositor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// CLIEngine drives a compositor worker binary over stdin/stdout. The worker
// speaks newline-delimited JSON: progress events while a phase runs, then a
// single result event. Errors come back as an "error" event or a non-zero
// exit.
type CLIEngine struct {
	binary     string
	entrypoint string
}

func NewCLIEngine(binary, entrypoint string) *CLIEngine {
	return &CLIEngine{binary: binary, entrypoint: entrypoint}
}

// workerEvent is one line of worker output.
type workerEvent struct {
	Progress *float64 `json:"progress,omitempty"`
	Bundle   string   `json:"bundle,omitempty"`
	Output   string   `json:"output,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func (e *CLIEngine) Prepare(ctx context.Context, templateID string, onProgress ProgressFunc) (Handle, error) {
	result, err := e.run(ctx, onProgress, nil,
		"bundle", "--entry", e.entrypoint, "--template", templateID)
	if err != nil {
		return Handle{}, fmt.Errorf("bundle %s: %w", templateID, err)
	}
	if result.Bundle == "" {
		return Handle{}, fmt.Errorf("bundle %s: worker produced no bundle location", templateID)
	}
	return Handle{Location: result.Bundle}, nil
}

func (e *CLIEngine) SelectTarget(ctx context.Context, h Handle, compositionID string, props map[string]any) (Target, error) {
	stdin, err := json.Marshal(props)
	if err != nil {
		return Target{}, fmt.Errorf("encode props: %w", err)
	}
	if _, err := e.run(ctx, nil, stdin,
		"select", "--bundle", h.Location, "--composition", compositionID); err != nil {
		return Target{}, fmt.Errorf("select %s: %w", compositionID, err)
	}
	return Target{Bundle: h.Location, CompositionID: compositionID, Props: props}, nil
}

func (e *CLIEngine) RenderStill(ctx context.Context, t Target, frame int) ([]byte, error) {
	return e.renderToFile(ctx, t, nil, "*.png",
		"still", "--frame", fmt.Sprint(frame))
}

func (e *CLIEngine) RenderVideo(ctx context.Context, t Target, codec Codec, onProgress ProgressFunc) ([]byte, error) {
	return e.renderToFile(ctx, t, onProgress, "*.out",
		"video", "--codec", string(codec))
}

// renderToFile runs a render subcommand that writes its artifact to a temp
// file, then slurps and removes it.
func (e *CLIEngine) renderToFile(ctx context.Context, t Target, onProgress ProgressFunc, pattern string, args ...string) ([]byte, error) {
	out, err := os.CreateTemp("", pattern)
	if err != nil {
		return nil, fmt.Errorf("temp output: %w", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	stdin, err := json.Marshal(t.Props)
	if err != nil {
		return nil, fmt.Errorf("encode props: %w", err)
	}

	args = append(args,
		"--bundle", t.Bundle,
		"--composition", t.CompositionID,
		"--out", outPath)
	if _, err := e.run(ctx, onProgress, stdin, args...); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read render output: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("render %s: worker produced no output", t.CompositionID)
	}
	return data, nil
}

// run executes the worker binary, streaming progress events into onProgress
// and returning the final result event.
func (e *CLIEngine) run(ctx context.Context, onProgress ProgressFunc, stdin []byte, args ...string) (workerEvent, error) {
	cmd := exec.CommandContext(ctx, e.binary, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return workerEvent{}, fmt.Errorf("pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return workerEvent{}, fmt.Errorf("start %s: %w", filepath.Base(e.binary), err)
	}

	var last workerEvent
	var workerErr string
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		var ev workerEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			log.Debug().Str("line", string(line)).Msg("unparseable worker output")
			continue
		}
		switch {
		case ev.Error != "":
			workerErr = ev.Error
		case ev.Progress != nil:
			if onProgress != nil {
				onProgress(clamp01(*ev.Progress))
			}
		default:
			last = ev
		}
	}

	if err := cmd.Wait(); err != nil {
		if workerErr != "" {
			return workerEvent{}, fmt.Errorf("compositor: %s", workerErr)
		}
		if msg := stderr.String(); msg != "" {
			return workerEvent{}, fmt.Errorf("compositor: %s", firstLine(msg))
		}
		return workerEvent{}, fmt.Errorf("compositor exit: %w", err)
	}
	if workerErr != "" {
		return workerEvent{}, fmt.Errorf("compositor: %s", workerErr)
	}
	return last, nil
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
