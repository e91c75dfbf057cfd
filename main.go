package main

import "github.com/robalobadob/wordleplus/cmd"

func main() {
	cmd.Execute()
}
