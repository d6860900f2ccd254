//go:build !linux && !darwin && !windows

package platform

// Notify does nothing on platforms without a notification backend.
func Notify(string, string, Options) error {
	return nil
}
