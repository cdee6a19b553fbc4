// Package main provides the entry point for the babbot CLI.
//
// babbot answers "what is for lunch" at the KAIST cafeterias. It prints the
// current menu on the command line and serves the same answer as Discord
// slash commands.
//
// Usage:
//
//	babbot menu 카이마루
//	babbot register
//	babbot serve
//
// See --help for all available options.
package main

func main() {
	Execute()
}
