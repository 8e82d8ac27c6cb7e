package main

import "github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/cmd"

func main() {
	cmd.Execute()
}
