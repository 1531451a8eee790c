//go:build !darwin

package permissions

// EnsureMicrophoneAccess is a no-op on non-macOS platforms.
func EnsureMicrophoneAccess() error {
	return nil
}
