package ui

import "time"

// Grid card geometry.
const (
	// CardWidth is the inner width of a product card.
	CardWidth = 26

	// CardLines is the number of content lines in a product card.
	CardLines = 5

	// cardOuterWidth and cardOuterHeight include the rounded border.
	cardOuterWidth  = CardWidth + 2
	cardOuterHeight = CardLines + 2

	// gridTop is the first screen row of the grid (below header and command bar).
	gridTop = 2
)

// Surface widths, border included.
const (
	cartWidth      = 66
	wishlistWidth  = 62
	authWidth      = 50
	quickViewWidth = 60
	filtersWidth   = 58
	helpWidth      = 56
)

// ActivityLines is the number of session log lines loaded into the activity view.
const ActivityLines = 500

// DefaultCheckoutDelay is the simulated payment processing time.
const DefaultCheckoutDelay = 1500 * time.Millisecond
