package main

import "runtime/pprof"
import "os"
import "os/signal"
import "syscall"

// profile collects a CPU profile into default.pgo until the returned stop
// function is called or the process is interrupted.
func profile() (stop func()) {
	f, err := os.Create("default.pgo")
	if err != nil {
		println(err.Error())
		return func() {}
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		println(err.Error())
		f.Close()
		return func() {}
	}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigChan:
			pprof.StopCPUProfile()
			f.Close()
			os.Exit(130)
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigChan)
		close(done)
		pprof.StopCPUProfile()
		f.Close()
	}
}
