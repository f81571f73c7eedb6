package main

import "github.com/golox-lang/golox/cmd/golox/cmd"

func main() {
	cmd.Main()
}
