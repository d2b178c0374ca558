package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunDuration(t *testing.T) {
	var stdout, stderr bytes.Buffer

	start := time.Now()
	code := run(context.Background(), []string{"-m", "4KB", "--duration", "2"}, &stdout, &stderr)
	elapsed := time.Since(start)

	assert.Equal(t, 0, code)
	assert.GreaterOrEqual(t, elapsed, 2*time.Second)
	assert.Less(t, elapsed, 3*time.Second)
	assert.Equal(t, "Allocated 4000 bytes (4.0 kB). Waiting for 2 second(s)...\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunDefaultDuration(t *testing.T) {
	var stdout, stderr bytes.Buffer

	start := time.Now()
	code := run(context.Background(), []string{"-m", "64MB"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
	assert.Equal(t, "Allocated 64000000 bytes (64 MB). Waiting for 1 second(s)...\n", stdout.String())
}

func TestRunDurationBeyondTimerRange(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	var stdout, stderr bytes.Buffer

	start := time.Now()
	code := run(ctx, []string{"-m", "1K", "-d", "9223372037"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
	assert.Contains(t, stdout.String(), "Waiting for 9223372037 second(s)...")
	assert.Contains(t, stderr.String(), "context deadline exceeded")
}

func TestRunWaitForeverUntilInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var stdout, stderr bytes.Buffer

	done := make(chan int, 1)
	go func() { done <- run(ctx, []string{"-m", "1MB", "-F"}, &stdout, &stderr) }()

	select {
	case code := <-done:
		t.Fatalf("returned with code %d before interruption", code)
	case <-time.After(1500 * time.Millisecond):
	}

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, 1, code)
	case <-time.After(time.Second):
		t.Fatal("did not stop after interruption")
	}
	assert.Contains(t, stdout.String(), "Waiting indefinitely...")
}

func TestRunMalformedSize(t *testing.T) {
	for _, size := range []string{"", "MB", "0MB", "10XB", "1.3B", "1.2.3", "abc", "18446744073709551616"} {
		t.Run(size, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), []string{"-m", size}, &stdout, &stderr)

			assert.Equal(t, 1, code)
			assert.Contains(t, stderr.String(), "Error: ")
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRunArgumentErrors(t *testing.T) {
	tests := [][]string{
		{},
		{"-m", "1K", "-d", "2", "-F"},
		{"1K"},
		{"-m", "1K", "--nope"},
	}

	for _, args := range tests {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), args, &stdout, &stderr)

		assert.Equal(t, 1, code, args)
		assert.Contains(t, stderr.String(), "Error: invalid arguments: ", args)
		assert.Empty(t, stdout.String(), args)
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-h"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stderr.String(), "--memory")
}
