package main

import "github.com/repotools/gh-meta/cmd"

func main() {
	cmd.Execute()
}
