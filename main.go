package main

import "os8util/cmd"

func main() {
	cmd.Execute()
}
