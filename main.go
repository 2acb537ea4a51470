package main

import "taskhero.com/taskhero/cmd"

func main() {
	cmd.Execute()
}
