package main

import "commutr/cmd/commutr/cmd"

func main() {
	cmd.Execute()
}
