// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"atomicgo.dev/cursor"

	"restadmin/cli/internal/terminal"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// startInlineSpinner draws rotating frames followed by text on the current
// line of w until the returned function is called. The stop function clears
// the line and restores the cursor.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	cursor.Hide()
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
			select {
			case <-stop:
				// Clear the spinner line completely, then return
				fmt.Fprintf(w, "\r%*s\r", len([]rune(line)), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s", line)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
		cursor.Show()
	}
}

// withSpinner runs fn while a spinner is shown on stderr. Nothing is drawn
// when stderr is not a terminal.
func withSpinner(text string, fn func() error) error {
	if !terminal.IsInteractive(os.Stderr) {
		return fn()
	}
	stop := startInlineSpinner(os.Stderr, text, spinnerFrames, 100*time.Millisecond)
	defer stop()
	return fn()
}
