package main

import "github.com/lepinkainen/readlog/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
