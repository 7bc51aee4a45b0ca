package main

import "github.com/profullstack/fastlog/cmd/fastlog"

func main() {
	fastlog.Execute()
}
