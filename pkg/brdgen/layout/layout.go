// Package layout converts a data model into a deterministic 2D diagram:
// positioned nodes and connecting edges matching a fixed visual template.
// Geometry is derived purely from model structure (counts and ordering), so
// the same input always produces byte-identical output.
package layout

import (
	"fmt"
	"strconv"

	"github.com/aathik/brdgen-go/pkg/brdgen/models"
)

// Template geometry. Offsets match the shared architect template so
// generated diagrams stay visually comparable and diffable across runs.
const (
	entityX      = -101
	entityYStart = 127
	entityWidth  = 90
	entityHeight = 20

	fieldX       = -27
	fieldWidth   = 166
	fieldHeight  = 20
	fieldYOffset = 38 // first field row sits 38px below its entity header
	rowHeight    = 28

	groupX     = -29
	groupWidth = 158

	expandedX     = 175
	expandedWidth = 146

	lookupIconSize = 17

	containerX = -121
	containerY = 80

	minContainerWidth  = 729
	minContainerHeight = 806

	pageWidth     = 850
	minPageHeight = 1100

	legendPadding = 15
	legendGap     = 12
	legendHeight  = 20
)

// NodeKind distinguishes structural nodes from decorations.
type NodeKind string

const (
	// KindContainer is the outer "Data Model" box (decoration).
	KindContainer NodeKind = "container"
	// KindLegend is a color-key label (decoration).
	KindLegend NodeKind = "legend"
	// KindEntity is a business-entity header box.
	KindEntity NodeKind = "entity"
	// KindField is a standalone field box.
	KindField NodeKind = "field"
	// KindGroup is a field-group box.
	KindGroup NodeKind = "group"
	// KindGroupField is a field box expanded to the right of its group.
	KindGroupField NodeKind = "groupField"
	// KindLookupIcon is the dropdown marker inside a lookup field (decoration).
	KindLookupIcon NodeKind = "lookupIcon"
)

// Node is a positioned rectangle with text.
type Node struct {
	ID     string
	Kind   NodeKind
	Label  string
	Style  string
	X      int
	Y      int
	Width  int
	Height int
}

// Edge is a connector between two node ids.
type Edge struct {
	ID     string
	Source string
	Target string
	Style  string
}

// Diagram is an ordered node/edge list plus canvas dimensions.
type Diagram struct {
	Nodes      []Node
	Edges      []Edge
	Width      int
	Height     int
	PageWidth  int
	PageHeight int
}

// Engine lays out data models. Each engine owns its own id sequence, so
// concurrent or repeated layout runs never share state.
type Engine struct {
	nextID int
}

// NewEngine returns a layout engine with a fresh id sequence.
func NewEngine() *Engine {
	// Ids start at 2: the serialized graph reserves 0 and 1 for its
	// implicit root cells.
	return &Engine{nextID: 2}
}

func (e *Engine) id() string {
	id := strconv.Itoa(e.nextID)
	e.nextID++
	return id
}

// Layout computes the diagram for a data model. Only business entities are
// drawn; reference entities exist solely as lookup targets named in field
// text. The input model is never mutated.
func (e *Engine) Layout(m *models.DataModel) *Diagram {
	business := m.BusinessEntities()

	totalRows := 0
	for _, entity := range business {
		standalone, groups := models.Partition(entity.Fields)
		totalRows += len(standalone)
		for _, g := range groups {
			totalRows += maxInt(1, len(g.Fields))
		}
	}
	// Headers and the gap between entities consume rows too.
	totalRows += 2 * len(business)

	contentBottom := entityYStart + fieldYOffset + (totalRows+2)*rowHeight
	height := maxInt(minContainerHeight, contentBottom-containerY+50)
	width := maxInt(minContainerWidth, expandedX+expandedWidth+50-containerX)

	d := &Diagram{
		Width:      width,
		Height:     height,
		PageWidth:  pageWidth,
		PageHeight: maxInt(minPageHeight, height+200),
	}

	d.Nodes = append(d.Nodes, Node{
		ID:     e.id(),
		Kind:   KindContainer,
		Label:  "Data Model",
		Style:  containerStyle,
		X:      containerX,
		Y:      containerY,
		Width:  width,
		Height: height,
	})
	e.layoutLegend(d, width)

	entityY := entityYStart
	for _, entity := range business {
		entityY = e.layoutEntity(d, entity, entityY)
	}

	return d
}

// layoutLegend packs the color-key labels right-to-left into the container's
// top-right corner.
func (e *Engine) layoutLegend(d *Diagram, containerWidth int) {
	y := containerY + legendPadding
	x := containerX + containerWidth - legendPadding
	for i := len(legendSpecs) - 1; i >= 0; i-- {
		spec := legendSpecs[i]
		x -= spec.width + legendGap
		d.Nodes = append(d.Nodes, Node{
			ID:     e.id(),
			Kind:   KindLegend,
			Label:  spec.label(),
			Style:  spec.style(),
			X:      x,
			Y:      y,
			Width:  spec.width,
			Height: legendHeight,
		})
	}
}

// layoutEntity emits the header, standalone fields and field groups for one
// entity and returns the y position for the next entity header.
func (e *Engine) layoutEntity(d *Diagram, entity models.Entity, headerY int) int {
	headerID := e.id()
	d.Nodes = append(d.Nodes, Node{
		ID:     headerID,
		Kind:   KindEntity,
		Label:  fmt.Sprintf(`<font color="%s">%s</font>`, palette.entity.font, entity.Name),
		Style:  entityStyle,
		X:      entityX,
		Y:      headerY,
		Width:  entityWidth,
		Height: entityHeight,
	})

	standalone, groups := models.Partition(entity.Fields)
	y := headerY + fieldYOffset

	for _, field := range standalone {
		fieldID := e.id()
		d.Nodes = append(d.Nodes, Node{
			ID:     fieldID,
			Kind:   KindField,
			Label:  field.Name,
			Style:  fieldStyle(&field),
			X:      fieldX,
			Y:      y,
			Width:  fieldWidth,
			Height: fieldHeight,
		})
		d.Edges = append(d.Edges, Edge{
			ID:     e.id(),
			Source: headerID,
			Target: fieldID,
			Style:  plainEdgeStyle,
		})
		if field.IsLookup {
			e.addLookupIcon(d, fieldX+fieldWidth, y)
		}
		y += rowHeight
	}

	for _, group := range groups {
		if len(group.Fields) == 0 {
			// Unreachable via Partition; skip rather than draw an empty box.
			continue
		}
		groupID := e.id()
		d.Nodes = append(d.Nodes, Node{
			ID:     groupID,
			Kind:   KindGroup,
			Label:  group.Name,
			Style:  groupStyle,
			X:      groupX,
			Y:      y,
			Width:  groupWidth,
			Height: fieldHeight,
		})
		d.Edges = append(d.Edges, Edge{
			ID:     e.id(),
			Source: headerID,
			Target: groupID,
			Style:  manyEdgeStyle,
		})

		// Children start at the SAME y as the group box.
		childY := y
		for _, field := range group.Fields {
			childID := e.id()
			d.Nodes = append(d.Nodes, Node{
				ID:     childID,
				Kind:   KindGroupField,
				Label:  field.Name,
				Style:  fieldStyle(&field),
				X:      expandedX,
				Y:      childY,
				Width:  expandedWidth,
				Height: fieldHeight,
			})
			d.Edges = append(d.Edges, Edge{
				ID:     e.id(),
				Source: groupID,
				Target: childID,
				Style:  expandedEdgeStyle,
			})
			if field.IsLookup {
				e.addLookupIcon(d, expandedX+expandedWidth, childY)
			}
			childY += rowHeight
		}

		// Advance past the tallest column so groups never overlap.
		y += maxInt(1, len(group.Fields)) * rowHeight
	}

	return y + rowHeight
}

// addLookupIcon places the dropdown marker inset from the right edge of a
// field box at rightX whose top is at fieldY.
func (e *Engine) addLookupIcon(d *Diagram, rightX, fieldY int) {
	d.Nodes = append(d.Nodes, Node{
		ID:     e.id(),
		Kind:   KindLookupIcon,
		Style:  lookupIconStyle,
		X:      rightX - lookupIconSize - 3,
		Y:      fieldY + (fieldHeight-lookupIconSize)/2,
		Width:  lookupIconSize,
		Height: lookupIconSize,
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
