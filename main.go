package main

import "github.com/soultoolman/geo-alchemy/cmd"

func main() {
	cmd.Execute()
}
