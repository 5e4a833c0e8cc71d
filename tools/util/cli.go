package util

import (
	"fmt"
	"os"
	"time"
)

// Spinner animates a progress indicator on stderr until stop is closed.
// Run it in its own goroutine; output goes to stderr so piped stdout stays
// clean.
func Spinner(text string, stop chan bool) {
	frames := []string{"-", "\\", "|", "/"}
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	i := 0
	for {
		select {
		case <-stop:
			// Clear the spinner line before handing the terminal back.
			fmt.Fprintf(os.Stderr, "\r%*s\r", len(text)+6, "")
			return
		case <-ticker.C:
			fmt.Fprintf(os.Stderr, "\r%s %s... ", frames[i%len(frames)], text)
			i++
		}
	}
}
