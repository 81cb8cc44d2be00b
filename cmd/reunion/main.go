// Command reunion benchmarks the union-find engine and applies workload scripts.
package main

import "github.com/papapumpkin/reunion/cmd"

func main() {
	cmd.Execute()
}
