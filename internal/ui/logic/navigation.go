package logic

// Navigator handles the cursor and viewport of a flat list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 20}
}

// SelectedIndex returns the current selected index
func (n *Navigator) SelectedIndex() int {
	return n.selectedIndex
}

// ViewportOffset returns the index of the first visible row
func (n *Navigator) ViewportOffset() int {
	return n.viewportOffset
}

// SetViewportHeight sets how many lines the list may use, scroll
// indicators included
func (n *Navigator) SetViewportHeight(height, totalItems int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.ensureSelectedVisible(totalItems)
}

// Reset moves the cursor back to the top
func (n *Navigator) Reset() {
	n.selectedIndex = 0
	n.viewportOffset = 0
}

// Move moves the cursor by delta rows, clamped to the list
func (n *Navigator) Move(delta, totalItems int) {
	n.SetSelectedIndex(n.selectedIndex+delta, totalItems)
}

// PageUp moves the selection up by one page
func (n *Navigator) PageUp(totalItems int) {
	n.Move(-n.pageSize(), totalItems)
}

// PageDown moves the selection down by one page
func (n *Navigator) PageDown(totalItems int) {
	n.Move(n.pageSize(), totalItems)
}

// Home jumps to the first row
func (n *Navigator) Home(totalItems int) {
	n.SetSelectedIndex(0, totalItems)
}

// End jumps to the last row
func (n *Navigator) End(totalItems int) {
	n.SetSelectedIndex(totalItems-1, totalItems)
}

// Clamp keeps the cursor inside a list that may have shrunk
func (n *Navigator) Clamp(totalItems int) {
	n.SetSelectedIndex(n.selectedIndex, totalItems)
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index, totalItems int) {
	if index >= totalItems {
		index = totalItems - 1
	}
	if index < 0 {
		index = 0
	}
	n.selectedIndex = index
	n.ensureSelectedVisible(totalItems)
}

// Window returns the visible row range [start, end) and how many rows are
// hidden above and below it
func (n *Navigator) Window(totalItems int) (start, end, above, below int) {
	start = n.viewportOffset
	if start > totalItems {
		start = totalItems
	}
	end = start + n.effectiveHeight(totalItems)
	if end > totalItems {
		end = totalItems
	}
	return start, end, start, totalItems - end
}

func (n *Navigator) pageSize() int {
	size := n.viewportHeight - 2 // Leave some overlap
	if size < 1 {
		size = 1
	}
	return size
}

// effectiveHeight is the number of rows left once scroll indicators take
// their lines
func (n *Navigator) effectiveHeight(totalItems int) int {
	needsTopIndicator := n.viewportOffset > 0
	needsBottomIndicator := n.viewportOffset+n.viewportHeight < totalItems

	if !needsBottomIndicator && needsTopIndicator {
		if totalItems-n.viewportOffset > n.viewportHeight-1 {
			needsBottomIndicator = true
		}
	}

	height := n.viewportHeight
	if needsTopIndicator {
		height--
	}
	if needsBottomIndicator {
		height--
	}
	if height < 1 {
		height = 1
	}
	return height
}

func (n *Navigator) ensureSelectedVisible(totalItems int) {
	if totalItems <= 0 {
		n.selectedIndex = 0
		n.viewportOffset = 0
		return
	}

	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}

	// Scrolling changes which indicators are shown, so settle in a few passes
	for i := 0; i < 3; i++ {
		height := n.effectiveHeight(totalItems)
		if n.selectedIndex < n.viewportOffset+height {
			break
		}
		n.viewportOffset = n.selectedIndex - height + 1
	}

	maxOffset := totalItems - 1
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}

	// Pull the window back up when the rows below it ran out
	for n.viewportOffset > 0 {
		n.viewportOffset--
		if totalItems-n.viewportOffset > n.effectiveHeight(totalItems) {
			n.viewportOffset++
			break
		}
	}
}
