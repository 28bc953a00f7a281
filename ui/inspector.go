package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// NodeInfo describes one selected node.
type NodeInfo struct {
	Index     int
	X, Y      float32
	Degree    int
	Neighbors []int
}

// NodeInspector renders details for the primary selected node.
type NodeInspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewNodeInspector creates a new inspector panel.
func NewNodeInspector(x, y, width int32) *NodeInspector {
	return &NodeInspector{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (n *NodeInspector) SetPosition(x, y int32) {
	n.x = x
	n.y = y
}

// Draw renders info about the node and the size of the whole selection.
func (n *NodeInspector) Draw(info NodeInfo, selected int) {
	r := n.renderer
	pad := r.Theme.Padding
	r.DrawPanel(n.x, n.y, n.width, r.Theme.LineHeight*6+pad*2)

	x := n.x + pad
	y := n.y + pad
	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Node %d", info.Index))
	y = r.DrawLabelValue(x, y, "position", fmt.Sprintf("%.1f, %.1f", info.X, info.Y))
	y = r.DrawLabelValue(x, y, "degree", fmt.Sprintf("%d", info.Degree))

	list := ""
	for i, nb := range info.Neighbors {
		if i == 8 {
			list += " ..."
			break
		}
		if i > 0 {
			list += " "
		}
		list += fmt.Sprintf("%d", nb)
	}
	y = r.DrawLabelValue(x, y, "neighbors", list)
	if selected > 1 {
		rl.DrawText(fmt.Sprintf("+%d more selected", selected-1), x, y, r.Theme.FontSize, r.Theme.LabelColor)
	}
}
