package main

import "github.com/jpl-au/igr/cmd"

func main() {
	cmd.Execute()
}
