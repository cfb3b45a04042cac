package main

import "github.com/bmatsuo/diylisp/cmd"

func main() {
	cmd.Execute()
}
