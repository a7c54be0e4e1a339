//go:build runnerdebug

package runner

const strictInvariants = true
