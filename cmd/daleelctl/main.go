package main

import "github.com/mohamedgamal323/daleel/cmd/daleelctl/cmd"

func main() {
	cmd.Execute()
}
