package main

import "github.com/wealthyways/wealthyways/cmd"

func main() {
	cmd.Execute()
}
