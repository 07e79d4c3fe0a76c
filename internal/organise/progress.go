package organise

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent is a progress update emitted while fetching course data or
// organising files. Components receive the callback explicitly at
// construction; there is no process-wide logger state.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}
