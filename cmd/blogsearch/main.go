// Command blogsearch indexes markdown blog posts and searches them
// from the terminal.
package main

import "github.com/s-hiraoku/blogsearch/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
