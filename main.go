package main

import "github.com/mouse-blink/tangle/cmd"

func main() {
	cmd.Execute()
}
