package main

import "nebula/cmd"

func main() {
	cmd.Execute()
}
