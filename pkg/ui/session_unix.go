//go:build !windows && !darwin

package ui

// Linux and the BSDs need an X11 or Wayland display for windowed tools.
const osAlwaysGraphical = false
