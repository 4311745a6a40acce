package main

import "billkeep/cmd"

func main() {
	cmd.Execute()
}
