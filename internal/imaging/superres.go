package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// DefaultSuperResolutionArgs is the argument template used when a
// CommandUpscaler is configured without one. It matches the common
// "-i in -o out -s scale" convention of ESRGAN-style command line tools.
var DefaultSuperResolutionArgs = []string{"-i", "{input}", "-o", "{output}", "-s", "{scale}"}

// CommandUpscaler runs an external super-resolution executable.
//
// The executable is resolved lazily on first use and the result is cached for
// the lifetime of the upscaler. Input and output images are exchanged through
// PNG files in a private scratch directory that Close removes.
//
// Argument templates may contain the placeholders {input}, {output} and
// {scale}, which are substituted on every call.
//
// A CommandUpscaler is safe for concurrent use.
type CommandUpscaler struct {
	command string
	args    []string
	timeout time.Duration

	once    sync.Once
	path    string
	lookErr error

	mu      sync.Mutex
	scratch string
	closed  bool
}

// NewCommandUpscaler creates an upscaler for the given executable.
//
// Parameters:
//   - command: Executable name or path, resolved with exec.LookPath.
//   - args: Argument template. Nil or empty uses DefaultSuperResolutionArgs.
//   - timeout: Per-call limit. Zero means no limit beyond the caller's context.
func NewCommandUpscaler(command string, args []string, timeout time.Duration) *CommandUpscaler {
	if len(args) == 0 {
		args = DefaultSuperResolutionArgs
	}
	return &CommandUpscaler{
		command: command,
		args:    append([]string(nil), args...),
		timeout: timeout,
	}
}

// Name implements Upscaler.
func (u *CommandUpscaler) Name() string {
	return filepath.Base(u.command)
}

// Acquire resolves the executable. It is called implicitly by Upscale and
// returns ErrUpscaleModelUnavailable (wrapped) when the executable cannot be
// found.
func (u *CommandUpscaler) Acquire() error {
	u.once.Do(func() {
		if u.command == "" {
			u.lookErr = fmt.Errorf("%w: no super-resolution command configured", ErrUpscaleModelUnavailable)
			return
		}
		path, err := exec.LookPath(u.command)
		if err != nil {
			u.lookErr = fmt.Errorf("%w: %v", ErrUpscaleModelUnavailable, err)
			return
		}
		u.path = path
	})
	return u.lookErr
}

// Upscale implements Upscaler by round-tripping img through the executable.
func (u *CommandUpscaler) Upscale(ctx context.Context, img image.Image, factor int) (image.Image, error) {
	if err := u.Acquire(); err != nil {
		return nil, err
	}

	dir, err := u.scratchDir()
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	in := filepath.Join(dir, id+"-in.png")
	out := filepath.Join(dir, id+"-out.png")
	defer os.Remove(in)
	defer os.Remove(out)

	if err := imaging.Save(img, in); err != nil {
		return nil, fmt.Errorf("failed to write super-resolution input: %w", err)
	}

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, u.path, u.expandArgs(in, out, factor)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("super-resolution command failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	result, err := imaging.Open(out)
	if err != nil {
		return nil, fmt.Errorf("failed to read super-resolution output: %w", err)
	}
	return result, nil
}

// Close removes the scratch directory. The upscaler must not be used after
// Close.
func (u *CommandUpscaler) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.closed = true
	if u.scratch == "" {
		return nil
	}
	err := os.RemoveAll(u.scratch)
	u.scratch = ""
	return err
}

func (u *CommandUpscaler) scratchDir() (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return "", fmt.Errorf("%w: upscaler closed", ErrUpscaleModelUnavailable)
	}
	if u.scratch != "" {
		return u.scratch, nil
	}
	dir, err := os.MkdirTemp("", "image-vectorize-sr-*")
	if err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}
	u.scratch = dir
	return dir, nil
}

func (u *CommandUpscaler) expandArgs(in, out string, factor int) []string {
	r := strings.NewReplacer("{input}", in, "{output}", out, "{scale}", strconv.Itoa(factor))
	args := make([]string, len(u.args))
	for i, a := range u.args {
		args[i] = r.Replace(a)
	}
	return args
}
