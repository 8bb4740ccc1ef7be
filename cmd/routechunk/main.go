// Command routechunk is the CLI front end for the route-chunking analyzer
// core (pkg/api): detect, chunk (including "chunk main"), watch, and
// analyze subcommands over a route module file.
package main

func main() {
	Execute()
}
