package main

import "github.com/user/bmark/cmd"

func main() {
	cmd.Execute()
}
