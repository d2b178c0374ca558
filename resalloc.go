// Package resalloc consumes a fixed amount of physical memory for a while,
// for exercising memory limits, schedulers and OOM handling.
package resalloc

import (
	"context"
	"fmt"
	"io"
)

// Hog holds one touched buffer for the lifetime of the process.
type Hog struct {
	*Config

	resolver *Resolver
	buf      []byte
}

func New(options ...ConfigFn) *Hog {
	c := createConfig(options)
	return &Hog{
		Config:   c,
		resolver: &Resolver{Units: c.Units},
	}
}

// Run resolves the configured size, allocates and touches that many
// bytes, reports to out and then waits per the configured policy.
// A Forever wait only returns once ctx is done.
func (h *Hog) Run(ctx context.Context, out io.Writer) error {
	size, err := h.resolver.Resolve(h.Memory)
	if err != nil {
		return err
	}

	h.buf = Allocate(size)
	Touch(h.buf, h.Stride)

	if h.Wait.Forever {
		fmt.Fprintf(out, "Allocated %d bytes (%s). Waiting indefinitely...\n", size, FormatBytes(size))
	} else {
		fmt.Fprintf(out, "Allocated %d bytes (%s). Waiting for %d second(s)...\n", size, FormatBytes(size), h.Wait.Seconds)
	}

	if err := Wait(ctx, h.Wait); err != nil {
		return fmt.Errorf("wait %s: %w", h.Wait, err)
	}

	return nil
}

// Buffer returns the held buffer, nil before Run has allocated it.
func (h *Hog) Buffer() []byte { return h.buf }
