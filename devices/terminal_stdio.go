package devices

import (
	"os"

	"golang.org/x/term"
)

// StdioTerminal wraps Terminal with raw-mode stdin/stdout so
// keystrokes reach the emulated machine one byte at a time instead of
// being line-buffered by the OS.
type StdioTerminal struct {
	*Terminal
	oldState *term.State
}

// NewStdioTerminal puts stdin into raw mode (if it's a TTY) and
// returns a Terminal reading/writing the real console. Restore must
// be called before the process exits to leave the terminal usable.
func NewStdioTerminal() (*StdioTerminal, error) {
	st := &StdioTerminal{}
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return nil, err
		}
		st.oldState = old
	}
	st.Terminal = NewTerminal(os.Stdin, os.Stdout)
	return st, nil
}

// Restore puts the controlling terminal back into its original mode.
func (s *StdioTerminal) Restore() error {
	if s.oldState == nil {
		return nil
	}
	return term.Restore(int(os.Stdin.Fd()), s.oldState)
}
