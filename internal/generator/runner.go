// Package generator runs the external heatmap computation.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// ErrGenerationFailed marks every failed invocation of the generator
var ErrGenerationFailed = errors.New("heatmap generation failed")

// Result describes a finished invocation
type Result struct {
	ExitCode int
	Duration time.Duration
	Stdout   string
}

// Runner produces the heatmap images for a K sequence
type Runner interface {
	Run(ctx context.Context, ks []int) (Result, error)
}

// ExitError carries the process diagnostics. They are for logs only.
type ExitError struct {
	Code   int
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%v: %v", ErrGenerationFailed, e.Err)
}

func (e *ExitError) Unwrap() []error {
	return []error{ErrGenerationFailed, e.Err}
}

// PythonRunner executes `<python> <script> k1 k2 ...` inside Dir, where
// the script writes one PNG per K.
type PythonRunner struct {
	Python string
	Script string
	Dir    string
}

// NewPythonRunner creates a runner for the given interpreter and script
func NewPythonRunner(python, script, dir string) *PythonRunner {
	return &PythonRunner{Python: python, Script: script, Dir: dir}
}

// Args builds the positional arguments passed to the interpreter
func (r *PythonRunner) Args(ks []int) []string {
	args := make([]string, 0, len(ks)+1)
	args = append(args, r.Script)
	for _, k := range ks {
		args = append(args, strconv.Itoa(k))
	}
	return args
}

// Run executes the script and waits for it to exit
func (r *PythonRunner) Run(ctx context.Context, ks []int) (Result, error) {
	cmd := exec.CommandContext(ctx, r.Python, r.Args(ks)...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{Duration: time.Since(start), Stdout: stdout.String()}
	if err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		res.ExitCode = code
		return res, &ExitError{Code: code, Stderr: stderr.String(), Err: err}
	}
	return res, nil
}
