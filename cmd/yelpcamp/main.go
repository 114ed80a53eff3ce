package main

import "yelpcamp/cmd/yelpcamp/commands"

func main() {
	commands.Execute()
}
