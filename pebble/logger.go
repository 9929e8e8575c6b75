package pebble

import "log"

// A Logger logs status messages produced by an
// EntropyReward.
type Logger interface {
	LogPhase(from, to Phase)
	LogEntropy(batchSize int, meanEntropy, meanReward float64)
}

// StandardLogger is a Logger which uses the log package.
//
// A Field of name <N> controls whether or not the Log<N>
// method does anything.
type StandardLogger struct {
	Phase   bool
	Entropy bool
}

// LogPhase logs a phase transition.
func (s *StandardLogger) LogPhase(from, to Phase) {
	if s.Phase {
		log.Printf("phase: from=%s to=%s", from, to)
	}
}

// LogEntropy logs the raw and normalized entropy of a
// batch of states.
func (s *StandardLogger) LogEntropy(batchSize int, meanEntropy, meanReward float64) {
	if s.Entropy {
		log.Printf("entropy: batch=%d entropy=%f reward=%f", batchSize,
			meanEntropy, meanReward)
	}
}
