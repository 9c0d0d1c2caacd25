package main

import "github.com/jywlabs/brio/cmd"

func main() {
	cmd.Execute()
}
