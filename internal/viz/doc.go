// Package viz provides the terminal look of the portfolio: lipgloss themes,
// derived styles and small render helpers (gradients, badges, progress bars).
//
// Five themes ship built in; cyberpunk is the default. Colors for
// experience status and type follow the active theme, certificate type
// colors are fixed brand colors.
package viz
