//go:build !debug
// +build !debug

package ionsrc

func DebugLog(format string, args ...interface{})     {}
func DebugLogOnce(format string, args ...interface{}) {}
