// cubepack packs cuboid items into fixed-size bins.
//
// Build:
//
//	go build -o cubepack ./cmd/cubepack
//
// Run the HTTP API:
//
//	cubepack serve --listen :8000
package main

import "github.com/piwi3910/cubepack/cmd/cubepack/commands"

func main() {
	commands.Execute()
}
