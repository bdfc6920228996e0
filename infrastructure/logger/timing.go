package logger

import "time"

// LogAndMeasureExecutionTime writes a debug entry marking the start of
// functionName and returns the function writing the matching end entry with
// the elapsed time:
//
//	defer logger.LogAndMeasureExecutionTime(log, "LoadIndex")()
//
// Nothing is measured when log is above LevelDebug.
func LogAndMeasureExecutionTime(log *Logger, functionName string) (onEnd func()) {
	if log.Level() > LevelDebug {
		return func() {}
	}
	start := time.Now()
	log.Debugf("%s start", functionName)
	return func() {
		log.Debugf("%s end. Took: %s", functionName, time.Since(start))
	}
}
