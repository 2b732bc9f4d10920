package main

import "github.com/Tiliavir/reti/cmd"

func main() {
	cmd.Execute()
}
