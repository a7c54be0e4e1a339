//go:build !runnerdebug

package runner

const strictInvariants = false
