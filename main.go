// Package main is the entry point for the wsbump CLI.
//
// wsbump bumps outdated dependency versions in the manifests of a yarn
// workspace project.
package main

import "github.com/ajxudir/wsbump/cmd"

func main() {
	cmd.Execute()
}
