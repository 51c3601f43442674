package main

import "github.com/deploymenttheory/go-dmcrypt/cmd"

func main() {
	cmd.Execute()
}
