//go:build ws281x

package version

func init() { hardware = true }
