package core

// Mode is the editing mode the host was in when formatting was requested.
type Mode string

const (
	NormalMode     Mode = "normal"
	InsertMode     Mode = "insert"
	VisualMode     Mode = "visual"
	VisualLineMode Mode = "visual-line"
	CommandMode    Mode = "command"
)

// IsInteractive reports whether the mode is an interactive insertion context,
// where text is being typed and auto-wrapping is better left to the host.
func (m Mode) IsInteractive() bool {
	return m == InsertMode
}
