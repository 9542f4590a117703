// Package terminal owns the local terminal: switching it into cbreak or
// non-blocking mode for a bounded scope, and finding out which inline image
// protocol it understands.
//
// Mode changes are always paired with a Restore func returned by Acquire.
// Callers defer the restore so the terminal is put back on every exit path:
//
//	restore, err := tty.Acquire(terminal.CBreak, terminal.RestoreDrain)
//	if err != nil {
//		return err
//	}
//	defer restore()
//
// Protocol detection tries, in order, a forced protocol from configuration,
// the kitty graphics query, the TERM_PROGRAM variable for iTerm2, and finally
// falls back to dumping frames into a file.
package terminal
