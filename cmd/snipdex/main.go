package main

import "github.com/kailas-cloud/snipdex/internal/cli"

func main() {
	cli.Execute()
}
