package main

import "github.com/chrisdamba/cafedatasim/cmd"

func main() {
	cmd.Execute()
}
