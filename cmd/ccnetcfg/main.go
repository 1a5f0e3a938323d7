package main

import "github.com/simplesurance/ccnetcfg/internal/command"

func main() {
	command.Execute()
}
