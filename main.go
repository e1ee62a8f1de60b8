package main

import "github.com/afromations/assetctl/cmd"

func main() {
	cmd.Execute()
}
