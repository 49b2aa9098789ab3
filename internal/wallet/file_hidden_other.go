//go:build !windows

package wallet

// HideFile is a no-op outside Windows; the 0600 mode already keeps the file private.
func HideFile(string) {}
