package profiling

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"
)

// CobraProfiler adds --cpu-profile, --mem-profile and --timing to a command
// tree.
type CobraProfiler struct {
	cpuPath string
	memPath string
	timing  bool
	cpuFile *os.File
}

// NewCobraProfiler returns a profiler with no flags bound yet.
func NewCobraProfiler() *CobraProfiler {
	return &CobraProfiler{}
}

// AddFlags binds the profiling flags as persistent flags of cmd.
func (p *CobraProfiler) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&p.cpuPath, "cpu-profile", "", "Write a CPU profile to this file")
	cmd.PersistentFlags().StringVar(&p.memPath, "mem-profile", "", "Write a heap profile to this file on exit")
	cmd.PersistentFlags().BoolVar(&p.timing, "timing", false, "Print a timing breakdown to stderr on exit")
}

// PreRun starts the profiles selected by the flags. Use it as
// PersistentPreRunE.
func (p *CobraProfiler) PreRun(cmd *cobra.Command, args []string) error {
	if p.timing {
		Enable()
	}
	if p.cpuPath == "" {
		return nil
	}
	f, err := os.Create(p.cpuPath)
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("could not start CPU profile: %w", err)
	}
	p.cpuFile = f
	return nil
}

// PostRun flushes the profiles. Use it as PersistentPostRunE.
func (p *CobraProfiler) PostRun(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		p.cpuFile.Close()
		p.cpuFile = nil
		fmt.Fprintf(stderr, "CPU profile written to %s\n", p.cpuPath)
	}
	if p.memPath != "" {
		f, err := os.Create(p.memPath)
		if err != nil {
			return fmt.Errorf("could not create heap profile: %w", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("could not write heap profile: %w", err)
		}
		fmt.Fprintf(stderr, "Heap profile written to %s\n", p.memPath)
	}
	if p.timing {
		Summarize(stderr)
	}
	return nil
}
