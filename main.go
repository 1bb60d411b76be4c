package main

import "gaiadauto/cmd"

func main() {
	cmd.Execute()
}
