package window

// Window defines the interface for all window types
type Window interface {
	// View renders the window content
	View(width, height int) string

	// Identity
	Name() string
}
