package core

// DefaultPrompt is the prompt token used when the host page does not supply one.
const DefaultPrompt = "$"

// TranscriptEntry is one command of a scripted terminal session and the
// lines it prints.
type TranscriptEntry struct {
	Command string
	Outputs []string
}
