// Package camera provides a 2D camera for viewing the layout plane.
package camera

// Camera maps layout coordinates to screen pixels with pan and zoom.
// The layout plane is unbounded, so panning is free in every direction.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	// Center restored by Reset
	homeX, homeY float32
}

// New creates a camera at 1:1 zoom where world and screen coordinates
// coincide, so the origin sits at the top-left corner of the viewport.
func New(viewportW, viewportH, minZoom, maxZoom float32) *Camera {
	if minZoom <= 0 {
		minZoom = 0.25
	}
	if maxZoom < minZoom {
		maxZoom = minZoom
	}
	c := &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   minZoom,
		MaxZoom:   maxZoom,
		homeX:     viewportW / 2,
		homeY:     viewportH / 2,
	}
	c.X, c.Y = c.homeX, c.homeY
	c.Zoom = clamp(1, minZoom, maxZoom)
	return c
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// SegmentVisible reports whether the segment's bounding box overlaps the view.
func (c *Camera) SegmentVisible(x1, y1, x2, y2 float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return max(x1, x2) >= minX && min(x1, x2) <= maxX &&
		max(y1, y2) >= minY && min(y1, y2) <= maxY
}

// Resize updates viewport dimensions, keeping the world center fixed.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt multiplies the zoom by factor while keeping the world point under
// screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	c.X = wx - (sx-c.ViewportW/2)/c.Zoom
	c.Y = wy - (sy-c.ViewportH/2)/c.Zoom
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X, c.Y = c.homeX, c.homeY
	c.SetZoom(1.0)
}

// Fit centers the camera on a world rectangle and zooms so it fills the
// viewport with margin screen pixels to spare on each side.
func (c *Camera) Fit(minX, minY, maxX, maxY, margin float32) {
	c.X = (minX + maxX) / 2
	c.Y = (minY + maxY) / 2
	w := max(maxX-minX, 1)
	h := max(maxY-minY, 1)
	availW := max(c.ViewportW-2*margin, 1)
	availH := max(c.ViewportH-2*margin, 1)
	c.SetZoom(min(availW/w, availH/h))
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
// Returns (minX, minY, maxX, maxY) in world coordinates.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
