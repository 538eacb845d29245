package main

import "github.com/reddcoin-project/go-rddcore/internal/cmd"

func main() {
	cmd.Execute()
}
