package main

import (
	"fmt"
	"io"
	"sync"
)

const progressDots = 40

// progressMonitor prints a row of dots as simulated games complete
type progressMonitor struct {
	mu          sync.Mutex
	out         io.Writer
	dotsPrinted int
}

func newProgressMonitor(out io.Writer) *progressMonitor {
	return &progressMonitor{out: out}
}

// OnGameComplete prints dots up to the completed fraction
func (m *progressMonitor) OnGameComplete(completed, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if total <= 0 {
		return
	}
	target := min(completed*progressDots/total, progressDots)
	for ; m.dotsPrinted < target; m.dotsPrinted++ {
		fmt.Fprint(m.out, ".")
	}
	if completed >= total {
		fmt.Fprintf(m.out, " %d games\n", total)
	}
}
