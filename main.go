// Copyright © 2025 The javals authors

package main

import "github.com/javakit/javals/cmd"

func main() {
	cmd.Execute()
}
