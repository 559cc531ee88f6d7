package main

import "github.com/Dendekky/gamelytics-ai/cmd"

func main() {
	cmd.Execute()
}
