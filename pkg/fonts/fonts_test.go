package fonts

import (
	"encoding/base64"
	"sync"
	"testing"
)

func TestRegular(t *testing.T) {
	f, err := Regular()
	if err != nil {
		t.Fatal(err)
	}
	if f == nil {
		t.Fatal("Regular() returned nil font")
	}
	if g, _ := Regular(); g != f {
		t.Error("Regular() should parse once")
	}
}

func TestTTFBase64(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(TTFBase64())
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != len(TTF()) {
		t.Errorf("decoded %d bytes, want %d", len(raw), len(TTF()))
	}
}

func TestNewFaceRejectsBadSize(t *testing.T) {
	if _, err := NewFace(0); err == nil {
		t.Error("NewFace(0) should fail")
	}
}

func TestMeasure(t *testing.T) {
	m := NewFaceMeasurer()
	defer m.Close()

	small, err := m.Measure("gopher", 20)
	if err != nil {
		t.Fatal(err)
	}
	large, err := m.Measure("gopher", 40)
	if err != nil {
		t.Fatal(err)
	}
	if !small.Valid() {
		t.Fatalf("Measure returned %v", small)
	}
	if large.W <= small.W || large.H <= small.H {
		t.Errorf("larger font should measure larger: %v vs %v", large, small)
	}

	longer, _ := m.Measure("gophers", 20)
	if longer.W <= small.W {
		t.Errorf("longer word should be wider: %v vs %v", longer, small)
	}
	if longer.H != small.H {
		t.Errorf("height depends on size only: %v vs %v", longer, small)
	}

	if _, err := m.Measure("x", -1); err == nil {
		t.Error("negative size should fail")
	}
}

func TestMeasureEmptyTextHasWidth(t *testing.T) {
	m := NewFaceMeasurer()
	s, err := m.Measure("", 12)
	if err != nil {
		t.Fatal(err)
	}
	if s.W != 1 {
		t.Errorf("empty text width = %d, want 1", s.W)
	}
}

func TestMetrics(t *testing.T) {
	m := NewFaceMeasurer()
	met, err := m.Metrics(30)
	if err != nil {
		t.Fatal(err)
	}
	if met.Ascent <= 0 || met.Descent <= 0 {
		t.Errorf("metrics = %+v", met)
	}
	s, _ := m.Measure("x", 30)
	if met.Height != s.H {
		t.Errorf("Metrics.Height = %d, Measure height = %d", met.Height, s.H)
	}
}

func TestMeasureConcurrent(t *testing.T) {
	m := NewFaceMeasurer()
	want, _ := m.Measure("cloud", 24)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				got, err := m.Measure("cloud", 24)
				if err != nil || got != want {
					t.Errorf("Measure = %v, %v; want %v", got, err, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}
