package label_test

import (
	"fmt"

	"github.com/matzehuels/forcegraph/pkg/label"
)

func ExampleFitter_Fit() {
	f := label.NewFitter(40)
	name := "Node 1 with a very long description"

	for _, zoom := range []float64{1, 3} {
		l := f.Fit(name, zoom)
		fmt.Printf("zoom %.0f: %q\n", zoom, l.Texts())
	}
	// Output:
	// zoom 1: ["Node 1" "with" "..."]
	// zoom 3: ["Node 1 with a very" "long description"]
}
