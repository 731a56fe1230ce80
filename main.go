package main

import "releasedrop/cmd"

func main() {
	cmd.Execute()
}
