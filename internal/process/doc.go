// Package process terminates headless browser process trees left behind by
// a failed or interrupted render.
package process
