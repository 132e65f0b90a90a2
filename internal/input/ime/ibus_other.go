//go:build !linux

package ime

// DialIBus reports ErrUnavailable; IBus only exists on Linux.
func DialIBus() (Editor, error) {
	return nil, ErrUnavailable
}
