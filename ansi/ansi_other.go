//go:build !windows

package ansi

// EnableANSI is a no-op outside Windows; VT processing is already on.
func EnableANSI() error {
	return nil
}
