package main

import "github.com/KaramelBytes/happiness-cli/cmd"

func main() {
	cmd.Execute()
}
