package layout_test

import (
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layout"
)

func ExamplePacker() {
	p := layout.NewPacker(geom.Pt(0, 0))
	for range 3 {
		r, err := p.PlaceNext(geom.Sz(10, 10))
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(r)
	}
	fmt.Println(layout.Bounds(p.Placed()))
	// Output:
	// [-5,-5 10x10]
	// [-5,5 10x10]
	// [5,-5 10x10]
	// [-5,-5 20x20]
}

func ExampleSpiral() {
	s := layout.NewSpiral(geom.Pt(50, 50), 20)
	fmt.Println(s.Point(0))
	// Output: (50,50)
}
