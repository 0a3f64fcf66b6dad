package main

import "github.com/RicardoYam/Meet/internal/cmd"

func main() {
	cmd.Execute()
}
