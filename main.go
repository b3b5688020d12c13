package main

import "pantry/cmd"

func main() {
	cmd.Execute()
}
