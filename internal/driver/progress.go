package driver

import "time"

// Stage is the step a file is in.
type Stage uint8

const (
	StageLoad Stage = iota
	StageParse
	StageAnalyze
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageParse:
		return "parse"
	case StageAnalyze:
		return "analyze"
	default:
		return "unknown"
	}
}

// Status reports whether a stage started or how a file ended.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	// StatusError marks a file that has error diagnostics or a failed pass.
	StatusError
)

// Event is one progress step of one file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Elapsed time.Duration
}

// ProgressSink receives events from concurrent workers; implementations
// must be goroutine-safe.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to a channel. The caller closes it after
// BuildFiles returns.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) { s.Ch <- ev }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
