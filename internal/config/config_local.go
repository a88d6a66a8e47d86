//go:build !gcloud

package config

// Validate is a no-op for the local build; the in-process timer waker has no
// required configuration.
func (c *WakerConfig) Validate() error {
	return nil
}
