package main

import "github.com/kamusis/hrmatch/cmd"

func main() {
	cmd.Execute()
}
