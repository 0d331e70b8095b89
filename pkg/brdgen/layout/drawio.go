package layout

import (
	"encoding/xml"
	"strconv"
)

// mxfile is the draw.io document envelope.
type mxFile struct {
	XMLName xml.Name  `xml:"mxfile"`
	Host    string    `xml:"host,attr"`
	Agent   string    `xml:"agent,attr"`
	Version string    `xml:"version,attr"`
	Diagram mxDiagram `xml:"diagram"`
}

type mxDiagram struct {
	Name  string       `xml:"name,attr"`
	ID    string       `xml:"id,attr"`
	Model mxGraphModel `xml:"mxGraphModel"`
}

type mxGraphModel struct {
	Dx         string `xml:"dx,attr"`
	Dy         string `xml:"dy,attr"`
	Grid       string `xml:"grid,attr"`
	GridSize   string `xml:"gridSize,attr"`
	Guides     string `xml:"guides,attr"`
	Tooltips   string `xml:"tooltips,attr"`
	Connect    string `xml:"connect,attr"`
	Arrows     string `xml:"arrows,attr"`
	Fold       string `xml:"fold,attr"`
	Page       string `xml:"page,attr"`
	PageScale  string `xml:"pageScale,attr"`
	PageWidth  string `xml:"pageWidth,attr"`
	PageHeight string `xml:"pageHeight,attr"`
	Math       string `xml:"math,attr"`
	Shadow     string `xml:"shadow,attr"`
	Root       mxRoot `xml:"root"`
}

type mxRoot struct {
	Cells []mxCell `xml:"mxCell"`
}

type mxCell struct {
	ID       string      `xml:"id,attr"`
	Parent   string      `xml:"parent,attr,omitempty"`
	Style    string      `xml:"style,attr,omitempty"`
	Value    *string     `xml:"value,attr,omitempty"`
	Vertex   string      `xml:"vertex,attr,omitempty"`
	Edge     string      `xml:"edge,attr,omitempty"`
	Source   string      `xml:"source,attr,omitempty"`
	Target   string      `xml:"target,attr,omitempty"`
	Geometry *mxGeometry `xml:"mxGeometry,omitempty"`
}

type mxGeometry struct {
	X        string `xml:"x,attr,omitempty"`
	Y        string `xml:"y,attr,omitempty"`
	Width    string `xml:"width,attr,omitempty"`
	Height   string `xml:"height,attr,omitempty"`
	Relative string `xml:"relative,attr,omitempty"`
	As       string `xml:"as,attr"`
}

// MarshalDrawio serializes a diagram into draw.io mxGraph XML, indented with
// four spaces and without an XML declaration, matching the template files the
// output is compared against.
func MarshalDrawio(d *Diagram) ([]byte, error) {
	cells := make([]mxCell, 0, len(d.Nodes)+len(d.Edges)+2)
	cells = append(cells,
		mxCell{ID: "0"},
		mxCell{ID: "1", Parent: "0"},
	)

	for _, n := range d.Nodes {
		label := n.Label
		cells = append(cells, mxCell{
			ID:     n.ID,
			Parent: "1",
			Style:  n.Style,
			Value:  &label,
			Vertex: "1",
			Geometry: &mxGeometry{
				X:      strconv.Itoa(n.X),
				Y:      strconv.Itoa(n.Y),
				Width:  strconv.Itoa(n.Width),
				Height: strconv.Itoa(n.Height),
				As:     "geometry",
			},
		})
	}

	for _, e := range d.Edges {
		cells = append(cells, mxCell{
			ID:       e.ID,
			Parent:   "1",
			Style:    e.Style,
			Edge:     "1",
			Source:   e.Source,
			Target:   e.Target,
			Geometry: &mxGeometry{Relative: "1", As: "geometry"},
		})
	}

	doc := mxFile{
		Host:    "app.diagrams.net",
		Agent:   "brdgen",
		Version: "29.3.0",
		Diagram: mxDiagram{
			Name: "Data Model",
			ID:   "data-model-diagram",
			Model: mxGraphModel{
				Dx:         "1826",
				Dy:         "824",
				Grid:       "0",
				GridSize:   "10",
				Guides:     "1",
				Tooltips:   "1",
				Connect:    "1",
				Arrows:     "1",
				Fold:       "1",
				Page:       "0",
				PageScale:  "1",
				PageWidth:  strconv.Itoa(d.PageWidth),
				PageHeight: strconv.Itoa(d.PageHeight),
				Math:       "0",
				Shadow:     "0",
				Root:       mxRoot{Cells: cells},
			},
		},
	}

	return xml.MarshalIndent(doc, "", "    ")
}
