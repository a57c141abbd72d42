package simulator

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunChecksRunsConcurrentlyAndKeepsOrder(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	blocking := func(ctx context.Context) (string, error) {
		started <- struct{}{}
		select {
		case <-release:
			return "up", nil
		case <-time.After(5 * time.Second):
			return "", errors.New("not released")
		}
	}

	done := make(chan []Result)
	go func() {
		done <- RunChecks(context.Background(), []Check{
			{Name: "backend", Run: blocking},
			{Name: "frontend", Run: blocking},
			{Name: "remote", Run: func(context.Context) (string, error) { return "", errors.New("down") }},
		})
	}()

	<-started
	<-started
	close(release)
	results := <-done

	require.Len(t, results, 3)
	assert.Equal(t, "backend", results[0].Name)
	assert.True(t, results[0].OK())
	assert.Equal(t, "frontend", results[1].Name)
	assert.True(t, results[1].OK())
	assert.Equal(t, "remote", results[2].Name)
	assert.False(t, results[2].OK())
}

func TestReport(t *testing.T) {
	var out bytes.Buffer
	failed := Report(&out, []Result{
		{Name: "backend", Detail: "weight 70kg"},
		{Name: "remote", Err: errors.New("no document")},
	})

	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "[ OK ] backend")
	assert.Contains(t, out.String(), "[FAIL] remote")
	assert.Contains(t, out.String(), "no document")
}
