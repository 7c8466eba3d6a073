package main

import "sync-documenter/cmd"

func main() {
	cmd.Execute()
}
