package fonts

import (
	"sync"

	"golang.org/x/image/font"

	"github.com/matzehuels/tagcloud/pkg/geom"
)

// Measurer reports the pixel box a word occupies at a font size.
type Measurer interface {
	Measure(text string, size int) (geom.Size, error)
}

// Metrics describes the vertical layout of a face.
type Metrics struct {
	Ascent  int // baseline offset from the top of the box
	Descent int
	Height  int // Ascent + Descent
}

// FaceMeasurer measures text with the embedded font. It keeps one face per
// size and is safe for concurrent use.
type FaceMeasurer struct {
	mu    sync.Mutex
	faces map[int]font.Face
}

// NewFaceMeasurer returns an empty measurer.
func NewFaceMeasurer() *FaceMeasurer {
	return &FaceMeasurer{faces: make(map[int]font.Face)}
}

// Measure returns the advance width and line height of text, both rounded up
// to whole pixels.
func (m *FaceMeasurer) Measure(text string, size int) (geom.Size, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(size)
	if err != nil {
		return geom.Size{}, err
	}
	met := face.Metrics()
	return geom.Size{
		W: max(1, font.MeasureString(face, text).Ceil()),
		H: (met.Ascent + met.Descent).Ceil(),
	}, nil
}

// Metrics returns the vertical metrics at size.
func (m *FaceMeasurer) Metrics(size int) (Metrics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(size)
	if err != nil {
		return Metrics{}, err
	}
	met := face.Metrics()
	a, d := met.Ascent.Ceil(), met.Descent.Ceil()
	return Metrics{Ascent: a, Descent: d, Height: (met.Ascent + met.Descent).Ceil()}, nil
}

// Close releases all cached faces.
func (m *FaceMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for size, f := range m.faces {
		_ = f.Close()
		delete(m.faces, size)
	}
	return nil
}

func (m *FaceMeasurer) face(size int) (font.Face, error) {
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := NewFace(size)
	if err != nil {
		return nil, err
	}
	m.faces[size] = f
	return f, nil
}

var _ Measurer = (*FaceMeasurer)(nil)
