package main

import "github.com/Justype/qsubgraph/cmd"

func main() {
	cmd.Execute()
}
