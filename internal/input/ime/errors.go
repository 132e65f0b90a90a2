package ime

import "errors"

var (
	// ErrUnavailable means no input-method editor exists on this
	// platform or in this session.
	ErrUnavailable = errors.New("ime: no input method editor available")

	// ErrNotConnected means the editor's bus connection could not be
	// established or has been closed.
	ErrNotConnected = errors.New("ime: editor not connected")
)
