package main

import "martianoff/gast/cmd/gast/commands"

func main() {
	commands.Execute()
}
