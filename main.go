package main

import "github.com/curaious/workshophub/cmd"

func main() {
	cmd.Execute()
}
