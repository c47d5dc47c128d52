package profiling

import (
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"go.uber.org/zap"
)

var (
	osCreate              = os.Create
	pprofStartCPUProfile  = pprof.StartCPUProfile
	pprofStopCPUProfile   = pprof.StopCPUProfile
	pprofWriteHeapProfile = func(w io.Writer) error { return pprof.WriteHeapProfile(w) }
)

// DoCPUProfiling starts CPU profiling into file and returns the function that
// stops it. Failures are logged and profiling is skipped.
func DoCPUProfiling(file string, logger *zap.Logger) (stop func()) {
	f, err := osCreate(file)
	if err != nil {
		logger.Error("could not create CPU profile", zap.String("file", file), zap.Error(err))
		return func() {}
	}
	if err = pprofStartCPUProfile(f); err != nil {
		logger.Error("could not start CPU profile", zap.Error(err))
		_ = f.Close()
		return func() {}
	}
	return func() {
		pprofStopCPUProfile()
		if err := f.Close(); err != nil {
			logger.Warn("failed to close CPU profile", zap.Error(err))
		}
	}
}

// DoMemProfiling returns a function that writes a heap profile to file.
// It is meant to be deferred so the profile reflects the end of the run.
func DoMemProfiling(file string, logger *zap.Logger) (write func()) {
	return func() {
		f, err := osCreate(file)
		if err != nil {
			logger.Error("could not create memory profile", zap.String("file", file), zap.Error(err))
			return
		}
		defer func() {
			_ = f.Close()
		}()
		runtime.GC()
		if err = pprofWriteHeapProfile(f); err != nil {
			logger.Error("could not write memory profile", zap.Error(err))
		}
	}
}
