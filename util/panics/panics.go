package panics

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/machinecoin-project/machinecoin-core/infrastructure/logger"
)

const exitHandlerTimeout = 5 * time.Second

// HandlePanic recovers panics, logs them together with the stack trace of
// the goroutine that spawned the panicking one, and exits.
func HandlePanic(log *logger.Logger, goroutineStackTrace []byte) {
	err := recover()
	if err == nil {
		return
	}

	reason := fmt.Sprintf("Fatal error: %+v", err)
	exit(log, reason, debug.Stack(), goroutineStackTrace)
}

// GoroutineWrapperFunc returns a function that spawns goroutines whose
// panics are handled by HandlePanic.
func GoroutineWrapperFunc(log *logger.Logger) func(func()) {
	return func(f func()) {
		stackTrace := debug.Stack()
		go func() {
			defer HandlePanic(log, stackTrace)
			f()
		}()
	}
}

// WaitGroupWrapperFunc is like GoroutineWrapperFunc, with every spawned
// goroutine registered in wg.
func WaitGroupWrapperFunc(log *logger.Logger, wg *sync.WaitGroup) func(func()) {
	spawn := GoroutineWrapperFunc(log)
	return func(f func()) {
		wg.Add(1)
		spawn(func() {
			defer wg.Done()
			f()
		})
	}
}

// Exit logs the given reason and terminates the process.
func Exit(log *logger.Logger, reason string) {
	exit(log, reason, nil, nil)
}

func exit(log *logger.Logger, reason string, currentThreadStackTrace []byte, goroutineStackTrace []byte) {
	exitHandlerDone := make(chan struct{})
	go func() {
		log.Criticalf("Exiting: %s", reason)
		if goroutineStackTrace != nil {
			log.Criticalf("Goroutine stack trace: %s", goroutineStackTrace)
		}
		if currentThreadStackTrace != nil {
			log.Criticalf("Stack trace: %s", currentThreadStackTrace)
		}
		log.Backend().Close()
		close(exitHandlerDone)
	}()

	select {
	case <-time.After(exitHandlerTimeout):
		fmt.Fprintln(os.Stderr, "Couldn't exit gracefully.")
	case <-exitHandlerDone:
	}
	fmt.Println("Exiting...")
	os.Exit(1)
}
