package pipeline

import "time"

// Stage describes a phase of one file's conversion.
type Stage string

const (
	// StageRead loads the file text.
	StageRead Stage = "read"
	// StageParse builds the syntax tree.
	StageParse Stage = "parse"
	// StageRewrite runs the migration and prints the tree.
	StageRewrite Stage = "rewrite"
	// StageWrite stores the converted text.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is currently in the stage.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished.
	StatusDone Status = "done"
	// StatusSkipped indicates the file needed no write.
	StatusSkipped Status = "skipped"
	// StatusError indicates the file failed in the stage.
	StatusError Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// Terminal reports whether the event ends a file's processing.
func (e Event) Terminal() bool {
	return e.Status == StatusDone || e.Status == StatusSkipped || e.Status == StatusError
}
