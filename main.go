package main

import "freelancehub/cmd"

func main() {
	cmd.Execute()
}
