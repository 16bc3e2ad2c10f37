// Package main is the entry point for the attentiond daemon.
package main

func main() {
	Execute()
}
