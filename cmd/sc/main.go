package main

import "selfcare/cmd/sc/root"

func main() {
	root.Execute()
}
