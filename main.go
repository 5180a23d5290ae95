package main

import "holidaze-server/cmd"

func main() {
	cmd.Execute()
}
