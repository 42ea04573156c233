package main

import "github.com/KaramelBytes/writeit-cli/cmd"

func main() {
	cmd.Execute()
}
