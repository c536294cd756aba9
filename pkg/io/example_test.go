package io_test

import (
	"fmt"
	"strings"

	fgio "github.com/matzehuels/forcegraph/pkg/io"
)

func ExampleReadJSON() {
	doc := `{
  "nodes": [
    {"id": 1, "name": "api", "shape": "rectangle"},
    {"id": 2, "name": "db", "showText": false}
  ],
  "edges": [{"source": 1, "target": 2, "weight": 2}]
}`

	nodes, edges, err := fgio.ReadJSON(strings.NewReader(doc))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, n := range nodes {
		fmt.Println(n.ID, n.Name, n.Shape, n.ShowText)
	}
	fmt.Println("weight:", edges[0].Weight)
	// Output:
	// 1 api rectangle true
	// 2 db circle false
	// weight: 2
}

func ExampleFormatOf() {
	for _, path := range []string{"graph.json", "graph.yml", "deps.gv"} {
		f, _ := fgio.FormatOf(path)
		fmt.Println(path, f)
	}
	// Output:
	// graph.json json
	// graph.yml yaml
	// deps.gv dot
}
