package main

import "marketadmin/cmd/seed/commands"

func main() {
	commands.Execute()
}
