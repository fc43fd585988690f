package main

import "table-editor/cmd"

func main() {
	cmd.Execute()
}
