package main

import "github.com/geostat-labs/biascope/cmd"

func main() {
	cmd.Execute()
}
