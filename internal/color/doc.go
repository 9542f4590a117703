// Package color provides the palette and styles for the short status lines
// uboterm prints outside of the mirrored display.
//
// Colors are lipgloss adaptive colors, so the same style renders legibly on
// dark and light backgrounds. Rendering degrades to plain text when the
// output is not a color-capable terminal or NO_COLOR is set.
//
// # Usage Example
//
//	color.Initialize(lipgloss.HasDarkBackground())
//	fmt.Println(color.Notice("Saving display in display.raw"))
//	fmt.Println(color.Hint("Run in kitty or iTerm2 to see the screen."))
//
// # Environment Variables
//
//   - NO_COLOR: Disable all color output
//   - UBOTERM_THEME: Force dark or light theme
package color
