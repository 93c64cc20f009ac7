package main

import "github.com/theirongolddev/fundboard/cmd"

func main() {
	cmd.Execute()
}
