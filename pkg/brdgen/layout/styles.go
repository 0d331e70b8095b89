package layout

import (
	"fmt"

	"github.com/aathik/brdgen-go/pkg/brdgen/models"
)

// color is a fill/stroke/font triple for one box style.
type color struct {
	fill   string
	stroke string
	font   string
}

// palette matches the shared template exactly.
var palette = struct {
	entity     color
	attribute  color
	identifier color
	group      color
}{
	entity:     color{fill: "#1ba1e2", stroke: "#006EAF", font: "#ffffff"},
	attribute:  color{fill: "#d5e8d4", stroke: "#82b366"},
	identifier: color{fill: "#f8cecc", stroke: "#b85450"},
	group:      color{fill: "#e3c800", stroke: "#B09500", font: "#000000"},
}

var (
	containerStyle = "rounded=0;whiteSpace=wrap;html=1;horizontal=1;verticalAlign=top;align=left;fontStyle=5"

	entityStyle = fmt.Sprintf(
		"rounded=0;whiteSpace=wrap;html=1;align=left;fillColor=%s;fontColor=%s;strokeColor=%s;",
		palette.entity.fill, palette.entity.font, palette.entity.stroke)

	groupStyle = fmt.Sprintf(
		"rounded=0;whiteSpace=wrap;html=1;fillColor=%s;fontColor=%s;strokeColor=%s;",
		palette.group.fill, palette.group.font, palette.group.stroke)

	lookupIconStyle = "shape=image;html=1;verticalAlign=top;verticalLabelPosition=bottom;" +
		"labelBackgroundColor=#ffffff;imageAspect=0;aspect=fixed;" +
		"image=https://cdn1.iconfinder.com/data/icons/material-core/10/arrow-drop-down-128.png;" +
		"fillColor=#008A8A;"

	// Standalone fields hang off the bottom of the header into their left side.
	plainEdgeStyle = "edgeStyle=orthogonalEdgeStyle;rounded=0;orthogonalLoop=1;jettySize=auto;html=1;" +
		"exitX=0.5;exitY=1;exitDx=0;exitDy=0;entryX=0;entryY=0.5;entryDx=0;entryDy=0;" +
		"startArrow=none;startFill=0;endArrow=none;endFill=0;"

	// Field groups get a crow's-foot terminator: one entity, many instances.
	manyEdgeStyle = "edgeStyle=orthogonalEdgeStyle;rounded=0;orthogonalLoop=1;jettySize=auto;html=1;" +
		"exitX=0.5;exitY=1;exitDx=0;exitDy=0;entryX=0;entryY=0.5;entryDx=0;entryDy=0;" +
		"startArrow=none;startFill=0;endArrow=ERmany;endFill=0;"

	// Group children connect from the group's right side to their left side.
	expandedEdgeStyle = "edgeStyle=orthogonalEdgeStyle;rounded=0;orthogonalLoop=1;jettySize=auto;html=1;" +
		"entryX=0;entryY=0.5;entryDx=0;entryDy=0;startArrow=none;startFill=0;endArrow=none;endFill=0;" +
		"exitX=1;exitY=0.5;exitDx=0;exitDy=0;"
)

// fieldStyle picks the box style for a field by the fixed precedence:
// identifiers (custom fields, meta fields, id-like names) over general
// attributes. Lookup fields reserve right padding for their icon.
func fieldStyle(f *models.Field) string {
	c := palette.attribute
	if f.IsIdentifier() {
		c = palette.identifier
	}
	style := fmt.Sprintf(
		"rounded=0;whiteSpace=wrap;html=1;align=left;fillColor=%s;strokeColor=%s;",
		c.fill, c.stroke)
	if f.IsLookup {
		style += "spacingRight=20;"
	}
	return style
}

// legendSpec describes one color-key label.
type legendSpec struct {
	text  string
	width int
	color color
	// white font labels wrap their text in a font tag like entity headers
	whiteFont bool
}

var legendSpecs = []legendSpec{
	{text: "Business Entity", width: 97, color: palette.entity, whiteFont: true},
	{text: "General Attributes", width: 109, color: palette.attribute},
	{text: "Identifiers / Custom", width: 140, color: palette.identifier},
	{text: "Field Groups", width: 112, color: palette.group},
}

func (s legendSpec) label() string {
	if s.whiteFont {
		return fmt.Sprintf(`<font color="%s">%s</font>`, s.color.font, s.text)
	}
	return s.text
}

func (s legendSpec) style() string {
	switch {
	case s.color.font != "" && s.whiteFont:
		return fmt.Sprintf("rounded=0;whiteSpace=wrap;html=1;align=left;fillColor=%s;fontColor=%s;strokeColor=%s;",
			s.color.fill, s.color.font, s.color.stroke)
	case s.color.font != "":
		return fmt.Sprintf("rounded=0;whiteSpace=wrap;html=1;fillColor=%s;fontColor=%s;strokeColor=%s;",
			s.color.fill, s.color.font, s.color.stroke)
	default:
		return fmt.Sprintf("rounded=0;whiteSpace=wrap;html=1;align=left;fillColor=%s;strokeColor=%s;",
			s.color.fill, s.color.stroke)
	}
}
