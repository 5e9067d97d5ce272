package main

import "bakery-api/cmd/bakeryctl/commands"

func main() {
	commands.Execute()
}
