package main

import "github.com/hupe1980/lingmatch/internal/cli"

func main() {
	cli.Execute()
}
