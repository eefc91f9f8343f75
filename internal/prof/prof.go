// Package prof wraps runtime/pprof and runtime/trace for the CLI's
// --cpuprofile, --memprofile and --runtime-trace flags.
package prof

import (
	"errors"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

var (
	cpuFile   *os.File
	traceFile *os.File
)

// StartCPU enables CPU profiling and writes samples to path.
func StartCPU(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	cpuFile = f
	return nil
}

// StopCPU stops an active CPU profile and closes its file.
func StopCPU() error {
	pprof.StopCPUProfile()
	if cpuFile == nil {
		return nil
	}
	err := cpuFile.Close()
	cpuFile = nil
	return err
}

// WriteMem captures a heap profile to path.
func WriteMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}

// StartTrace writes runtime trace data to path.
func StartTrace(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := trace.Start(f); err != nil {
		_ = f.Close()
		return err
	}
	traceFile = f
	return nil
}

// StopTrace ends an active runtime trace and closes its file.
func StopTrace() error {
	trace.Stop()
	if traceFile == nil {
		return nil
	}
	err := traceFile.Close()
	traceFile = nil
	return err
}

// Options selects the profiles Start enables; empty paths are skipped.
type Options struct {
	CPU   string
	Mem   string
	Trace string
}

// Start enables the requested profiles and returns a stop function that
// finishes them and writes the heap profile.
func Start(opts Options) (func() error, error) {
	if opts.CPU != "" {
		if err := StartCPU(opts.CPU); err != nil {
			return nil, err
		}
	}
	if opts.Trace != "" {
		if err := StartTrace(opts.Trace); err != nil {
			if opts.CPU != "" {
				_ = StopCPU()
			}
			return nil, err
		}
	}
	return func() error {
		var errs []error
		if opts.CPU != "" {
			errs = append(errs, StopCPU())
		}
		if opts.Trace != "" {
			errs = append(errs, StopTrace())
		}
		if opts.Mem != "" {
			errs = append(errs, WriteMem(opts.Mem))
		}
		return errors.Join(errs...)
	}, nil
}
