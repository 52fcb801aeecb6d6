//go:build windows || darwin

package ui

const osAlwaysGraphical = true
