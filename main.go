/*
Copyright © 2026 NAME HERE
*/
package main

import "github.com/masnyjimmy/envschema/cmd"

func main() {
	cmd.Execute()
}
